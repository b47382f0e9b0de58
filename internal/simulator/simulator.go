package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/briscola/internal/game"
	"github.com/lox/briscola/internal/randutil"
	"github.com/lox/briscola/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrTimeout is recorded for a game that did not finish within Config.Timeout
var ErrTimeout = errors.New("game timed out")

// Contender is one side of a batch: a display name and a factory that
// builds a fresh player for every game.
type Contender struct {
	Name string
	New  func(rng *rand.Rand) game.Player
}

// Config holds configuration for running a batch
type Config struct {
	Games     int
	Seed      int64
	Workers   int           // defaults to runtime.NumCPU()
	Duplicate bool          // play every deal twice with seats swapped
	Timeout   time.Duration // per game, 0 disables
	Clock     quartz.Clock
	Logger    *log.Logger
	Progress  func(completed, total int)
}

// Option configures RunBatch
type Option func(*Config)

func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

func WithDuplicate(enabled bool) Option { return func(c *Config) { c.Duplicate = enabled } }

func WithTimeout(d time.Duration) Option { return func(c *Config) { c.Timeout = d } }

func WithClock(clock quartz.Clock) Option { return func(c *Config) { c.Clock = clock } }

func WithLogger(logger *log.Logger) Option { return func(c *Config) { c.Logger = logger } }

// WithProgress registers a callback invoked after every finished game
func WithProgress(fn func(completed, total int)) Option {
	return func(c *Config) { c.Progress = fn }
}

// Simulator plays a batch of independent games between two contenders
type Simulator struct {
	a, b   Contender
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(a, b Contender, config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{
		a:      a,
		b:      b,
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
	}
}

// RunBatch is a convenience function for playing n games between a and b
func RunBatch(ctx context.Context, a, b Contender, n int, opts ...Option) (*statistics.Summary, error) {
	config := Config{Games: n}
	for _, opt := range opts {
		opt(&config)
	}
	return New(a, b, config).Run(ctx)
}

// job is one game of the batch
type job struct {
	index int
	seed  int64
	seatA game.Seat
}

// jobs expands the configured games into seeded jobs. Game i uses seed
// Seed+i; in duplicate mode each seed is played from both seats.
func (s *Simulator) jobs() []job {
	var jobs []job
	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		if s.config.Duplicate {
			jobs = append(jobs,
				job{index: 2 * i, seed: seed, seatA: game.Seat0},
				job{index: 2*i + 1, seed: seed, seatA: game.Seat1})
			continue
		}
		seatA := game.Seat0
		if i%2 == 1 {
			seatA = game.Seat1
		}
		jobs = append(jobs, job{index: i, seed: seed, seatA: seatA})
	}
	return jobs
}

// Run plays every game and returns the merged summary. Once ctx is done no
// new games start; games already running finish and are counted. The
// partial summary is returned together with the context error.
func (s *Simulator) Run(ctx context.Context) (*statistics.Summary, error) {
	if s.config.Games < 0 {
		return nil, fmt.Errorf("games must be non-negative, got %d", s.config.Games)
	}
	if s.a.New == nil || s.b.New == nil {
		return nil, errors.New("both contenders need a player factory")
	}

	jobs := s.jobs()
	summary := statistics.NewSummary(s.a.Name, s.b.Name)
	start := s.config.Clock.Now()

	s.logger.Info("Starting batch",
		"a", s.a.Name,
		"b", s.b.Name,
		"games", len(jobs),
		"seed", s.config.Seed,
		"workers", s.config.Workers,
		"duplicate", s.config.Duplicate)

	var (
		mu        sync.Mutex
		completed int
	)
	record := func(j job, r statistics.GameResult, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			summary.AddFailure(j.index, j.seed, err)
		} else {
			summary.Add(r)
		}
		completed++
		if s.config.Progress != nil {
			s.config.Progress(completed, len(jobs))
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(s.config.Workers)

	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r, err := s.playGame(j)
			if err != nil {
				s.logger.Error("Game failed", "game", j.index, "seed", j.seed, "error", err)
			}
			record(j, r, err)
			return nil
		})
	}
	_ = g.Wait()

	summary.SortFailures()
	summary.Elapsed = s.config.Clock.Since(start)

	if err := summary.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Batch complete",
		"games", summary.Games,
		"draws", summary.Draws,
		"failures", len(summary.Failures),
		"elapsed", summary.Elapsed)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("batch interrupted after %d of %d games: %w", completed, len(jobs), err)
	}
	return summary, nil
}

// playGame runs one job, with timeout protection when configured
func (s *Simulator) playGame(j job) (statistics.GameResult, error) {
	if s.config.Timeout <= 0 {
		return s.play(j)
	}

	type outcome struct {
		result statistics.GameResult
		err    error
	}
	done := make(chan outcome, 1)
	timeoutFired := make(chan struct{})

	timer := s.config.Clock.AfterFunc(s.config.Timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	go func() {
		r, err := s.play(j)
		done <- outcome{r, err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-timeoutFired:
		return statistics.GameResult{}, fmt.Errorf("%w after %v (seed: %d)", ErrTimeout, s.config.Timeout, j.seed)
	}
}

// play builds fresh players and a game for the job and plays it out. A
// strategy that panics fails its own game only.
func (s *Simulator) play(j job) (r statistics.GameResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			r = statistics.GameResult{}
			err = fmt.Errorf("%w: strategy panicked: %v", game.ErrContractViolation, p)
		}
	}()

	playerA := s.a.New(randutil.Derive(j.seed, 1))
	playerB := s.b.New(randutil.Derive(j.seed, 2))

	var players [game.NumSeats]game.Player
	players[j.seatA] = playerA
	players[j.seatA.Other()] = playerB

	g, err := game.New(players,
		game.WithSeed(j.seed),
		game.WithLogger(s.config.Logger))
	if err != nil {
		return statistics.GameResult{}, err
	}

	result, err := g.Play()
	if err != nil {
		return statistics.GameResult{}, err
	}

	r = statistics.GameResult{
		Game:   j.index,
		Seed:   j.seed,
		SeatA:  j.seatA,
		ScoreA: result.Scores[j.seatA],
		ScoreB: result.Scores[j.seatA.Other()],
		Tricks: result.Tricks,
	}
	s.logger.Debug("Game finished",
		"game", j.index,
		"seed", j.seed,
		"seat_a", j.seatA,
		"score_a", r.ScoreA,
		"score_b", r.ScoreB)
	return r, nil
}
