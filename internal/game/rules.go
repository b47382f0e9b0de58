package game

import "github.com/lox/briscola/internal/deck"

// DetermineTrickWinner resolves a trick. The rules apply in order:
//
//  1. both cards share a suit: the higher Value wins (points play no part)
//  2. exactly one card is trump: it wins
//  3. otherwise the leader takes the trick
func DetermineTrickWinner(lead, follow deck.Card, trump deck.Suit, leader Seat) Seat {
	follower := leader.Other()

	switch {
	case lead.Suit == follow.Suit:
		if follow.Value > lead.Value {
			return follower
		}
		return leader
	case follow.Suit == trump:
		return follower
	default:
		return leader
	}
}

// TrickPoints returns the points a trick is worth
func TrickPoints(lead, follow deck.Card) int {
	return lead.Points() + follow.Points()
}
