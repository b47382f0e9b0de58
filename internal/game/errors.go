package game

import "errors"

var (
	// ErrHandFull is returned when a fourth card is added to a hand
	ErrHandFull = errors.New("hand already holds 3 cards")

	// ErrContractViolation is returned when a player breaks the Player contract,
	// e.g. returns no card while the game is still running
	ErrContractViolation = errors.New("player contract violation")

	// ErrIllegalCard is returned when a player plays a card it was not dealt
	ErrIllegalCard = errors.New("card not in player's hand")

	// ErrCardConservation is returned when the 40 cards are no longer accounted for
	ErrCardConservation = errors.New("card conservation violated")

	// ErrScoreConservation is returned when the ledger disagrees with captured points
	ErrScoreConservation = errors.New("score conservation violated")

	// ErrGameAborted is returned by PlayTrick after a fatal error
	ErrGameAborted = errors.New("game aborted")

	// ErrGameOver is returned by PlayTrick once all tricks have been played
	ErrGameOver = errors.New("game is over")

	// ErrMissingPlayer is returned when New is called with a nil player
	ErrMissingPlayer = errors.New("both seats need a player")
)
