/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

type CommitOptions struct {
	// CreditByes counts every bye in the committed round as a win for the
	// player receiving it.
	CreditByes bool
}

// CommitRound returns a copy of t with p recorded as its next round. t itself
// is left untouched.
func CommitRound(t *Tournament, p *Proposal, opts CommitOptions) *Tournament {
	out := *t
	out.Players = append([]Player(nil), t.Players...)
	out.Rounds = make([]Round, 0, len(t.Rounds)+1)
	for _, r := range t.Rounds {
		out.Rounds = append(out.Rounds, Round{
			Number:   r.Number,
			Pairings: append([]Pairing(nil), r.Pairings...),
		})
	}
	if t.Rules != nil {
		rules := *t.Rules
		out.Rules = &rules
	}

	out.Rounds = append(out.Rounds, Round{
		Number:   len(t.Rounds) + 1,
		Pairings: append([]Pairing(nil), p.Pairings...),
	})

	if opts.CreditByes {
		for _, id := range p.Byes() {
			for idx := range out.Players {
				if out.Players[idx].ID == id {
					out.Players[idx].Wins++
				}
			}
		}
	}

	return &out
}
