// Package game implements the core Briscola rules for two players.
//
// The main type is Game, which owns the deck, the trump card, the score
// ledger and an engine-side copy of each player's hand. Players are
// pluggable strategies behind the Player interface; the engine only ever
// asks them to receive a card or pick one to play.
//
// # Basic Usage
//
// Create and run a complete game:
//
//	g, err := game.New([2]game.Player{a, b}, game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	result, err := g.Play()
//
// Or drive it one trick at a time, e.g. from a front end:
//
//	for !g.IsOver() {
//	    record, err := g.PlayTrick()
//	    ...
//	}
//
// # Deterministic Testing
//
// A Game never creates its own randomness. Pass WithRNG or WithSeed to make
// the shuffle and the choice of first leader reproducible. A fixed deal can
// be supplied with WithDeck together with WithLeader:
//
//	d := deck.FromCards(cards)
//	g, err := game.New(players, game.WithDeck(d), game.WithLeader(game.Seat0))
//
// # Invariants
//
// After every trick the engine checks that the deck, both hands and both
// captured piles hold each of the 40 cards exactly once, and that the ledger
// total equals the points of the captured cards. A violation aborts the game
// with ErrCardConservation or ErrScoreConservation.
package game
