package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/gameid"
)

// TricksPerGame is the number of tricks in a game played with a full deck
const TricksPerGame = deck.DeckSize / NumSeats

// Game runs a single two-player match. It is not safe for concurrent use;
// the simulator gives every goroutine its own Game.
type Game struct {
	id          string
	players     [NumSeats]Player
	names       [NumSeats]string
	deck        *deck.Deck
	trumpCard   deck.Card
	hands       [NumSeats]Hand
	captured    [NumSeats][]deck.Card
	ledger      ScoreLedger
	leader      Seat
	firstLeader Seat
	trick       int
	phase       Phase
	history     []TrickRecord
	err         error
	logger      *log.Logger
	eventBus    EventBus
}

// New deals a new game between the two players. Seat 0 receives the first
// card of every dealing round. A random source is required unless both the
// deck and the first leader are fixed through options.
func New(players [NumSeats]Player, opts ...Option) (*Game, error) {
	cfg := &gameConfig{leader: NoSeat}
	for _, opt := range opts {
		opt(cfg)
	}

	for seat, p := range players {
		if p == nil {
			return nil, fmt.Errorf("%w: seat %d is empty", ErrMissingPlayer, seat)
		}
	}

	d := cfg.deck
	if d == nil {
		var err error
		if d, err = deck.New(cfg.rng); err != nil {
			return nil, fmt.Errorf("failed to create deck: %w", err)
		}
	}

	leader := cfg.leader
	if !leader.Valid() {
		if cfg.rng == nil {
			return nil, fmt.Errorf("failed to choose first leader: %w", deck.ErrNoRandomSource)
		}
		leader = Seat(cfg.rng.IntN(NumSeats))
	}

	id := cfg.gameID
	if id == "" {
		if cfg.rng != nil {
			id = gameid.NewGenerator(cfg.rng).Generate()
		} else {
			id = gameid.Generate()
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bus := cfg.eventBus
	if bus == nil {
		bus = noopEventBus{}
	}

	g := &Game{
		id:          id,
		players:     players,
		deck:        d,
		leader:      leader,
		firstLeader: leader,
		phase:       PhaseDealing,
		logger:      logger.WithPrefix("game").With("game", id),
		eventBus:    bus,
	}
	for seat, p := range players {
		g.names[seat] = p.Name()
	}

	if err := g.deal(); err != nil {
		return nil, err
	}

	g.phase = PhaseTrickLoop
	g.logger.Debug("Dealt game",
		"trump", g.trumpCard,
		"leader", g.names[g.leader],
		"seat0", g.names[Seat0],
		"seat1", g.names[Seat1])
	g.eventBus.Publish(NewGameStartEvent(g.Snapshot()))

	return g, nil
}

// deal reveals the trump card, returns it to the bottom of the deck and
// deals three rounds of one card per seat.
func (g *Game) deal() error {
	trump, ok := g.deck.Draw()
	if !ok {
		return fmt.Errorf("%w: empty deck at deal", ErrCardConservation)
	}
	g.trumpCard = trump
	g.deck.PutBottom(trump)

	for round := 0; round < MaxHandSize; round++ {
		for _, seat := range []Seat{Seat0, Seat1} {
			card, ok := g.deck.Draw()
			if !ok {
				return fmt.Errorf("%w: deck ran out while dealing", ErrCardConservation)
			}
			if err := g.give(seat, card); err != nil {
				return err
			}
		}
	}
	return nil
}

// give hands a card to both the player and the engine's copy of its hand
func (g *Game) give(seat Seat, card deck.Card) error {
	if err := g.hands[seat].Add(card); err != nil {
		return fmt.Errorf("%w: engine hand for %s: %w", ErrContractViolation, g.names[seat], err)
	}
	if err := g.players[seat].ReceiveCard(card); err != nil {
		return fmt.Errorf("%s rejected %s: %w", g.names[seat], card, err)
	}
	return nil
}

// ID returns the game identifier
func (g *Game) ID() string { return g.id }

// Trump returns the trump suit
func (g *Game) Trump() deck.Suit { return g.trumpCard.Suit }

// TrumpCard returns the card revealed to fix the trump suit
func (g *Game) TrumpCard() deck.Card { return g.trumpCard }

// Phase returns the current lifecycle phase
func (g *Game) Phase() Phase { return g.phase }

// Leader returns the seat that leads the next trick
func (g *Game) Leader() Seat { return g.leader }

// Ledger returns the score ledger. Callers must treat it as read-only.
func (g *Game) Ledger() *ScoreLedger { return &g.ledger }

// Err returns the error that aborted the game, if any
func (g *Game) Err() error { return g.err }

// IsOver reports whether the game reached GameOver
func (g *Game) IsOver() bool { return g.phase == PhaseGameOver }

// History returns every trick played so far
func (g *Game) History() []TrickRecord {
	out := make([]TrickRecord, len(g.history))
	copy(out, g.history)
	return out
}

// PlayTrick plays one trick: leader then follower choose a card, the winner
// scores both cards, both seats draw (winner first) while the deck lasts and
// the winner leads the next trick.
func (g *Game) PlayTrick() (*TrickRecord, error) {
	if g.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGameAborted, g.err)
	}
	if g.phase == PhaseGameOver {
		return nil, ErrGameOver
	}

	trump := g.trumpCard.Suit
	leader := g.leader
	follower := leader.Other()

	lead, err := g.requestCard(leader, deck.Card{})
	if err != nil {
		return nil, g.abort(err)
	}
	follow, err := g.requestCard(follower, lead)
	if err != nil {
		return nil, g.abort(err)
	}

	winner := DetermineTrickWinner(lead, follow, trump, leader)
	points := g.ledger.award(winner, lead, follow)
	g.captured[winner] = append(g.captured[winner], lead, follow)

	if !g.deck.IsEmpty() {
		for _, seat := range []Seat{winner, winner.Other()} {
			card, ok := g.deck.Draw()
			if !ok {
				return nil, g.abort(fmt.Errorf("%w: odd number of cards left in deck", ErrCardConservation))
			}
			if err := g.give(seat, card); err != nil {
				return nil, g.abort(err)
			}
		}
	}

	g.trick++
	g.leader = winner
	record := TrickRecord{
		Number: g.trick,
		Leader: leader,
		Lead:   lead,
		Follow: follow,
		Winner: winner,
		Points: points,
	}
	g.history = append(g.history, record)

	g.logger.Debug("Trick resolved",
		"trick", record.Number,
		"lead", lead,
		"follow", follow,
		"winner", g.names[winner],
		"points", points,
		"deck", g.deck.Len())

	if err := g.validateConservation(); err != nil {
		return nil, g.abort(err)
	}

	over, err := g.checkTerminal()
	if err != nil {
		return nil, g.abort(err)
	}
	if over {
		g.phase = PhaseGameOver
	}

	g.eventBus.Publish(NewTrickEvent(record, g.Snapshot()))

	if over {
		if err := g.validateFinalScore(); err != nil {
			return nil, g.abort(err)
		}
		result, _ := g.Result()
		g.logger.Debug("Game over",
			"scores", result.Scores,
			"winner", result.Winner,
			"tricks", result.Tricks)
		g.eventBus.Publish(NewGameEndEvent(*result))
	}

	return &record, nil
}

// Play runs tricks until the game is over and returns the result
func (g *Game) Play() (*Result, error) {
	for !g.IsOver() {
		if _, err := g.PlayTrick(); err != nil {
			return nil, err
		}
	}
	result, _ := g.Result()
	return result, nil
}

// Result returns the outcome once the game is over
func (g *Game) Result() (*Result, bool) {
	if g.phase != PhaseGameOver {
		return nil, false
	}
	return &Result{
		GameID:      g.id,
		Names:       g.names,
		Scores:      g.ledger.Scores(),
		Winner:      g.ledger.Leader(),
		Tricks:      g.trick,
		Trump:       g.trumpCard.Suit,
		TrumpCard:   g.trumpCard,
		FirstLeader: g.firstLeader,
	}, true
}

// Snapshot returns a copy of the visible game state
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		GameID:        g.id,
		Phase:         g.phase,
		Trick:         g.trick,
		Trump:         g.trumpCard.Suit,
		TrumpCard:     g.trumpCard,
		Leader:        g.leader,
		DeckRemaining: g.deck.Len(),
	}
	for _, seat := range []Seat{Seat0, Seat1} {
		snap.Seats[seat] = SeatSnapshot{
			Name:     g.names[seat],
			Hand:     g.hands[seat].Cards(),
			Score:    g.ledger.Score(seat),
			Captured: len(g.captured[seat]),
		}
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		snap.LastTrick = &last
	}
	return snap
}

func (g *Game) view(seat Seat, lead deck.Card) TrickView {
	return TrickView{
		Seat:          seat,
		Trick:         g.trick + 1,
		Trump:         g.trumpCard.Suit,
		TrumpCard:     g.trumpCard,
		Lead:          lead,
		DeckRemaining: g.deck.Len(),
		OwnScore:      g.ledger.Score(seat),
		OpponentScore: g.ledger.Score(seat.Other()),
	}
}

// requestCard asks seat for a card and checks it against the engine's hand
func (g *Game) requestCard(seat Seat, lead deck.Card) (deck.Card, error) {
	card, ok := g.players[seat].SelectCard(g.view(seat, lead))
	if !ok {
		return deck.Card{}, fmt.Errorf("%w: %s returned no card on trick %d with %d cards dealt",
			ErrContractViolation, g.names[seat], g.trick+1, g.hands[seat].Len())
	}
	if !g.hands[seat].Remove(card) {
		return deck.Card{}, fmt.Errorf("%w: %s played %s, holds %s",
			ErrIllegalCard, g.names[seat], card, g.hands[seat].String())
	}
	return card, nil
}

// checkTerminal ends the game when seat 0 has no cards, after confirming
// that seat 1 and the deck are exhausted too.
func (g *Game) checkTerminal() (bool, error) {
	if g.players[Seat0].HasCards() {
		if g.hands[Seat0].IsEmpty() {
			return false, fmt.Errorf("%w: %s reports cards it was never dealt", ErrContractViolation, g.names[Seat0])
		}
		return false, nil
	}

	switch {
	case !g.hands[Seat0].IsEmpty():
		return false, fmt.Errorf("%w: %s reports no cards but holds %s",
			ErrContractViolation, g.names[Seat0], g.hands[Seat0].String())
	case !g.hands[Seat1].IsEmpty() || g.players[Seat1].HasCards():
		return false, fmt.Errorf("%w: %s still holds cards at game end", ErrContractViolation, g.names[Seat1])
	case !g.deck.IsEmpty():
		return false, fmt.Errorf("%w: %d cards left in deck at game end", ErrCardConservation, g.deck.Len())
	}
	return true, nil
}

func (g *Game) abort(err error) error {
	g.err = err
	g.logger.Error("Game aborted", "trick", g.trick+1, "error", err)
	g.eventBus.Publish(NewGameAbortEvent(g.id, err))
	return err
}
