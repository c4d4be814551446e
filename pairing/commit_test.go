/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommitRound(t *testing.T) {
	tourney := &Tournament{
		Players: []Player{
			{ID: "1", Name: "Ada"},
			{ID: "2", Name: "Bola"},
			{ID: "3", Name: "Chidi"},
		},
		PairingSystemID: SystemSwiss,
		Rules:           &Rules{AvoidRematches: true},
	}
	prop := &Proposal{Round: 1, Pairings: []Pairing{
		{White: "1", Black: "2"},
		{White: "3", Note: ByeNote},
	}}

	t.Run("without crediting byes", func(t *testing.T) {
		got := CommitRound(tourney, prop, CommitOptions{})
		if len(got.Rounds) != 1 || got.Rounds[0].Number != 1 {
			t.Fatalf("expected one round numbered 1, got %+v", got.Rounds)
		}
		if diff := cmp.Diff(prop.Pairings, got.Rounds[0].Pairings); diff != "" {
			t.Errorf("pairings mismatch (-want +got):\n%s", diff)
		}
		if got.Players[2].Wins != 0 {
			t.Errorf("bye credited without CreditByes")
		}
	})

	t.Run("crediting byes", func(t *testing.T) {
		got := CommitRound(tourney, prop, CommitOptions{CreditByes: true})
		if got.Players[2].Wins != 1 {
			t.Errorf("Chidi wins = %d; want 1", got.Players[2].Wins)
		}
		if Points(got.Players[2]) != 1 {
			t.Errorf("Chidi points = %v; want 1", Points(got.Players[2]))
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		got := CommitRound(tourney, prop, CommitOptions{CreditByes: true})
		got.Rules.AvoidRematches = false
		got.Players[0].Name = "Changed"
		if len(tourney.Rounds) != 0 {
			t.Errorf("original tournament gained rounds")
		}
		if tourney.Players[0].Name != "Ada" || tourney.Players[2].Wins != 0 {
			t.Errorf("original players modified: %+v", tourney.Players)
		}
		if !tourney.Rules.AvoidRematches {
			t.Errorf("original rules modified")
		}
	})

	t.Run("committed rounds validate", func(t *testing.T) {
		got := CommitRound(tourney, prop, CommitOptions{})
		if err := Validate(got); err != nil {
			t.Errorf("committed tournament does not validate: %v", err)
		}
		next, err := NextRound(got)
		if err != nil {
			t.Fatalf("NextRound: %v", err)
		}
		if next.Round != 2 {
			t.Errorf("next round = %d; want 2", next.Round)
		}
	})
}
