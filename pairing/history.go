/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

// ColorRecord counts how often a player has had each colour and which colour
// they had most recently.
type ColorRecord struct {
	White   int
	Black   int
	Last    Color
	HasLast bool
}

// Bias returns how strongly the player has been favoured with colour c. The
// lower the bias, the more the player is owed c.
func (cr ColorRecord) Bias(c Color) float64 {
	var bias float64
	if c == White {
		bias = float64(cr.White - cr.Black)
	} else {
		bias = float64(cr.Black - cr.White)
	}
	if cr.HasLast && cr.Last == c {
		bias += 0.5
	}

	return bias
}

// History is derived from the recorded rounds on every request and never
// persisted.
type History struct {
	Opponents map[PlayerID]map[PlayerID]bool
	Byes      map[PlayerID]bool
	Colors    map[PlayerID]ColorRecord
}

// BuildHistory indexes who has played whom, who already had a bye and the
// colour history of every player.
func BuildHistory(t *Tournament) *History {
	h := &History{
		Opponents: make(map[PlayerID]map[PlayerID]bool, len(t.Players)),
		Byes:      make(map[PlayerID]bool),
		Colors:    make(map[PlayerID]ColorRecord, len(t.Players)),
	}
	for _, p := range t.Players {
		h.Opponents[p.ID] = make(map[PlayerID]bool)
	}

	for _, r := range t.Rounds {
		for _, pr := range r.Pairings {
			if pr.IsBye() {
				h.Byes[pr.ByePlayer()] = true
				continue
			}
			if pr.White == NoPlayer {
				continue
			}
			h.addOpponent(pr.White, pr.Black)
			h.addOpponent(pr.Black, pr.White)

			w := h.Colors[pr.White]
			w.White++
			w.Last, w.HasLast = White, true
			h.Colors[pr.White] = w

			b := h.Colors[pr.Black]
			b.Black++
			b.Last, b.HasLast = Black, true
			h.Colors[pr.Black] = b
		}
	}

	return h
}

func (h *History) addOpponent(a, b PlayerID) {
	opps, ok := h.Opponents[a]
	if !ok {
		opps = make(map[PlayerID]bool)
		h.Opponents[a] = opps
	}
	opps[b] = true
}

// HavePlayed reports whether a and b have already met.
func (h *History) HavePlayed(a, b PlayerID) bool {
	return h.Opponents[a][b]
}

// HadBye reports whether id already received a bye.
func (h *History) HadBye(id PlayerID) bool {
	return h.Byes[id]
}
