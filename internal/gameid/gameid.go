package gameid

import (
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Base32 alphabet used for game IDs (Crockford's base32, lower case)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded game ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// RandSource is the subset of *rand.Rand used to derive IDs deterministically
type RandSource interface {
	Uint64() uint64
}

// Generator creates game IDs from a RandSource. With a seeded source the IDs of
// a batch are reproducible; without one they come from crypto/rand.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a new generator with optional RandSource
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new game ID from crypto randomness
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a random (version 4) UUID and encodes it as 26 base32 characters
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.randSource != nil {
		id, err = uuid.NewRandomFromReader(&sourceReader{src: g.randSource})
	} else {
		id, err = uuid.NewRandom()
	}
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return encoding.EncodeToString(id[:])
}

// Parse decodes a game ID back into its UUID
func Parse(id string) (uuid.UUID, error) {
	if len(id) != Length {
		return uuid.Nil, fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid game ID %q: %w", id, err)
	}
	return uuid.FromBytes(raw)
}

// Validate checks if a game ID is valid (26 characters, valid base32, UUID version 4)
func Validate(id string) error {
	u, err := Parse(id)
	if err != nil {
		return err
	}
	if u.Version() != 4 {
		return fmt.Errorf("game ID has unexpected UUID version %d", u.Version())
	}
	return nil
}

// sourceReader adapts a RandSource into the io.Reader uuid expects
type sourceReader struct {
	src RandSource
	buf [8]byte
	n   int
}

var _ io.Reader = (*sourceReader)(nil)

func (r *sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		if r.n == 0 {
			binary.LittleEndian.PutUint64(r.buf[:], r.src.Uint64())
			r.n = len(r.buf)
		}
		p[i] = r.buf[len(r.buf)-r.n]
		r.n--
	}
	return len(p), nil
}
