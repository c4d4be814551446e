/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makeIDs(n int) []PlayerID {
	ids := make([]PlayerID, n)
	for i := range ids {
		ids[i] = PlayerID(fmt.Sprintf("p%d", i+1))
	}
	return ids
}

type unordered struct{ a, b PlayerID }

func normalize(a, b PlayerID) unordered {
	if a > b {
		a, b = b, a
	}
	return unordered{a, b}
}

func TestRoundRobinFourPlayers(t *testing.T) {
	schedule := RoundRobinSchedule([]PlayerID{"A", "B", "C", "D"}, false)

	want := [][]Pairing{
		{{White: "A", Black: "D"}, {White: "B", Black: "C"}},
		{{White: "C", Black: "A"}, {White: "B", Black: "D"}},
		{{White: "A", Black: "B"}, {White: "C", Black: "D"}},
	}
	if diff := cmp.Diff(want, schedule); diff != "" {
		t.Errorf("schedule mismatch (-want +got):\n%s", diff)
	}

	seen := make(map[unordered]int)
	for _, round := range schedule {
		for _, p := range round {
			seen[normalize(p.White, p.Black)]++
		}
	}
	if len(seen) != 6 {
		t.Errorf("covered %d distinct pairs; want 6", len(seen))
	}
}

func TestRoundRobinEvenCoverage(t *testing.T) {
	for _, n := range []int{2, 6, 8, 12, 20} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			ids := makeIDs(n)
			schedule := RoundRobinSchedule(ids, false)
			if len(schedule) != n-1 {
				t.Fatalf("got %d rounds; want %d", len(schedule), n-1)
			}

			seen := make(map[unordered]int)
			for r, round := range schedule {
				if len(round) != n/2 {
					t.Errorf("round %d has %d pairings; want %d", r+1, len(round), n/2)
				}
				inRound := make(map[PlayerID]int)
				for _, p := range round {
					inRound[p.White]++
					inRound[p.Black]++
					seen[normalize(p.White, p.Black)]++
				}
				for _, id := range ids {
					if inRound[id] != 1 {
						t.Errorf("round %d: %v appears %d times", r+1, id, inRound[id])
					}
				}
			}
			if len(seen) != n*(n-1)/2 {
				t.Errorf("covered %d pairs; want %d", len(seen), n*(n-1)/2)
			}
			for pair, count := range seen {
				if count != 1 {
					t.Errorf("%v vs %v scheduled %d times", pair.a, pair.b, count)
				}
			}
		})
	}
}

func TestRoundRobinOdd(t *testing.T) {
	ids := makeIDs(5)
	schedule := RoundRobinSchedule(ids, false)
	if len(schedule) != 5 {
		t.Fatalf("got %d rounds; want 5", len(schedule))
	}
	sat := make(map[PlayerID]int)
	for r, round := range schedule {
		if len(round) != 2 {
			t.Errorf("round %d has %d pairings; want 2", r+1, len(round))
		}
		for _, id := range sittingOut(ids, round) {
			sat[id]++
		}
	}
	for _, id := range ids {
		if sat[id] != 1 {
			t.Errorf("%v sat out %d rounds; want 1", id, sat[id])
		}
	}
}

func TestRoundRobinColorBalance(t *testing.T) {
	ids := makeIDs(6)
	whites := make(map[PlayerID]int)
	for _, round := range RoundRobinSchedule(ids, false) {
		for _, p := range round {
			whites[p.White]++
		}
	}
	for _, id := range ids {
		// five games each; the circle method can't do better than 2-4
		if whites[id] < 2 || whites[id] > 4 {
			t.Errorf("%v has %d whites out of 5", id, whites[id])
		}
	}
}

func TestRoundRobinDouble(t *testing.T) {
	n := 6
	schedule := RoundRobinSchedule(makeIDs(n), true)
	if len(schedule) != 2*(n-1) {
		t.Fatalf("got %d rounds; want %d", len(schedule), 2*(n-1))
	}
	for k := 0; k < n-1; k++ {
		ret := schedule[k+n-1]
		if len(ret) != len(schedule[k]) {
			t.Fatalf("return leg of round %d has %d pairings", k+1, len(ret))
		}
		for i, p := range schedule[k] {
			if ret[i].White != p.Black || ret[i].Black != p.White {
				t.Errorf("round %d board %d: %v-%v not mirrored by %v-%v", k+1, i+1,
					p.White, p.Black, ret[i].White, ret[i].Black)
			}
		}
	}
}

func TestRoundRobinTooFew(t *testing.T) {
	if got := RoundRobinSchedule(nil, false); len(got) != 0 {
		t.Errorf("expected no rounds for an empty roster, got %v", got)
	}
}

func TestRoundRobinNextRound(t *testing.T) {
	tourney := &Tournament{
		Players: []Player{
			{ID: "1", Name: "Ada"}, {ID: "2", Name: "Bola"}, {ID: "3", Name: "Chidi"},
		},
		PairingSystemID: SystemRoundRobin,
	}

	prop, err := NextRound(tourney)
	if err != nil {
		t.Fatalf("NextRound returned error: %v", err)
	}
	if prop.Round != 1 {
		t.Errorf("proposal round = %d; want 1", prop.Round)
	}
	if len(prop.Boards()) != 1 || len(prop.Byes()) != 1 {
		t.Errorf("expected one board and one bye, got %+v", prop.Pairings)
	}

	for r := 0; r < 3; r++ {
		prop, err = NextRound(tourney)
		if err != nil {
			t.Fatalf("round %d: %v", r+1, err)
		}
		tourney = CommitRound(tourney, prop, CommitOptions{})
	}

	_, err = NextRound(tourney)
	if !errors.Is(err, ErrScheduleComplete) {
		t.Errorf("expected ErrScheduleComplete after 3 rounds, got %v", err)
	}
}
