/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import "slices"

// RoundRobinSchedule builds every round of a round robin with the circle
// method. When the roster is odd a sentinel slot is added; whoever meets the
// sentinel sits the round out and is left out of that round's pairings.
// With double set, a return leg with colours reversed follows the first.
func RoundRobinSchedule(ids []PlayerID, double bool) [][]Pairing {
	slots := append([]PlayerID(nil), ids...)
	if len(slots)%2 == 1 {
		slots = append(slots, NoPlayer)
	}
	n := len(slots)
	if n < 2 {
		return nil
	}

	rounds := make([][]Pairing, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([]Pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			p1, p2 := slots[i], slots[n-1-i]
			if p1 == NoPlayer || p2 == NoPlayer {
				continue
			}
			if r%2 == 0 {
				pairs = append(pairs, Pairing{White: p1, Black: p2})
			} else {
				pairs = append(pairs, Pairing{White: p2, Black: p1})
			}
		}
		rounds = append(rounds, pairs)

		// slot 0 stays put; the last slot moves to position 1
		last := slots[n-1]
		slots = slices.Insert(slots[:n-1], 1, last)
	}

	if double {
		for r := 0; r < n-1; r++ {
			leg := make([]Pairing, 0, len(rounds[r]))
			for _, p := range rounds[r] {
				leg = append(leg, Pairing{White: p.Black, Black: p.White})
			}
			rounds = append(rounds, leg)
		}
	}

	return rounds
}

// sittingOut returns the roster member absent from a scheduled round.
func sittingOut(ids []PlayerID, round []Pairing) []PlayerID {
	seen := make(map[PlayerID]bool, len(ids))
	for _, p := range round {
		seen[p.White] = true
		seen[p.Black] = true
	}
	var ret []PlayerID
	for _, id := range ids {
		if !seen[id] {
			ret = append(ret, id)
		}
	}

	return ret
}

type roundRobin struct{}

func (roundRobin) Name() string {
	return "Round Robin"
}

func (roundRobin) NextRound(t *Tournament) (*Proposal, error) {
	ids := make([]PlayerID, 0, len(t.Players))
	for _, p := range t.Players {
		ids = append(ids, p.ID)
	}
	schedule := RoundRobinSchedule(ids, t.EffectiveRules().DoubleRound)
	next := len(t.Rounds)
	if next >= len(schedule) {
		return nil, ErrScheduleComplete
	}

	pairings := append([]Pairing(nil), schedule[next]...)
	for _, id := range sittingOut(ids, schedule[next]) {
		pairings = append(pairings, Pairing{White: id, Note: RoundRobinByeNote})
	}

	return &Proposal{
		Round:    next + 1,
		Pairings: pairings,
	}, nil
}
