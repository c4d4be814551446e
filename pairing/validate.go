/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import "fmt"

// Validate checks that t is internally consistent. The first problem found
// is returned wrapped in ErrInvalidTournament.
func Validate(t *Tournament) error {
	known := make(map[PlayerID]bool, len(t.Players))
	for idx, p := range t.Players {
		if p.ID == NoPlayer {
			return fmt.Errorf("%w: player %d (%q) has no id",
				ErrInvalidTournament, idx+1, p.Name)
		}
		if known[p.ID] {
			return fmt.Errorf("%w: duplicate player id %v",
				ErrInvalidTournament, p.ID)
		}
		if p.Wins < 0 || p.Draws < 0 || p.Losses < 0 {
			return fmt.Errorf("%w: player %v has a negative result count",
				ErrInvalidTournament, p.ID)
		}
		known[p.ID] = true
	}

	for idx, r := range t.Rounds {
		if r.Number != idx+1 {
			return fmt.Errorf("%w: round %d is numbered %d",
				ErrInvalidTournament, idx+1, r.Number)
		}
		seen := make(map[PlayerID]bool)
		for _, pr := range r.Pairings {
			if pr.White == NoPlayer && pr.Black == NoPlayer {
				return fmt.Errorf("%w: round %d has an empty pairing",
					ErrInvalidTournament, r.Number)
			}
			if pr.White == pr.Black {
				return fmt.Errorf("%w: round %d pairs player %v against themself",
					ErrInvalidTournament, r.Number, pr.White)
			}
			for _, id := range []PlayerID{pr.White, pr.Black} {
				if id == NoPlayer {
					continue
				}
				if !known[id] {
					return fmt.Errorf("%w: round %d references unknown player %v",
						ErrInvalidTournament, r.Number, id)
				}
				if seen[id] {
					return fmt.Errorf("%w: player %v appears twice in round %d",
						ErrInvalidTournament, id, r.Number)
				}
				seen[id] = true
			}
		}
	}

	return nil
}
