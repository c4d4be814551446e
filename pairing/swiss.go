/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ByeNote           = "BYE (1 point)"
	RoundRobinByeNote = "BYE"
)

// maxSearchSteps bounds the backtracking search. Club rosters finish in a
// handful of steps; only pathological histories on very large rosters get
// close.
const maxSearchSteps = 1 << 18

type swiss struct{}

func (swiss) Name() string {
	return "Swiss"
}

func (swiss) NextRound(t *Tournament) (*Proposal, error) {
	return SwissNextRound(t), nil
}

// SwissNextRound proposes the next Swiss round for t. It never modifies t.
func SwissNextRound(t *Tournament) *Proposal {
	rules := t.EffectiveRules()
	hist := BuildHistory(t)
	ranked := Ranked(t.Players)

	prop := &Proposal{Round: len(t.Rounds) + 1}
	var byes []Pairing

	if len(ranked)%2 == 1 {
		bye := PickByeCandidate(ranked, hist)
		byes = append(byes, Pairing{White: bye.ID, Note: ByeNote})
		ranked = removePlayer(ranked, bye.ID)
	}

	canPlay := func(a, b PlayerID) bool {
		return !rules.AvoidRematches || !hist.HavePlayed(a, b)
	}
	order := candidateOrder(len(ranked), rules.PairHighVsLow)

	matched, ok := searchPairings(ranked, order, canPlay, maxSearchSteps)
	if !ok {
		var emergency []PlayerID
		matched, emergency = greedyPairings(ranked, order, canPlay)
		for _, id := range emergency {
			byes = append(byes, Pairing{White: id, Note: ByeNote})
			prop.Warnings = append(prop.Warnings,
				fmt.Sprintf("no opponent available for %v without a rematch; issued an extra bye",
					displayName(t, id)))
		}
		if len(emergency) == 0 {
			prop.Warnings = append(prop.Warnings,
				fmt.Sprintf("pairing search gave up after %d steps; pairings were chosen greedily",
					maxSearchSteps))
		}
	}

	for board, m := range matched {
		prop.Pairings = append(prop.Pairings,
			assignColors(ranked[m[0]], ranked[m[1]], hist, board))
	}
	prop.Pairings = append(prop.Pairings, byes...)

	return prop
}

// PickByeCandidate returns the player who should sit out: the lowest scorer
// (then lowest rated) who has not yet had a bye, or simply the lowest ranked
// player once everybody has had one.
func PickByeCandidate(players []Player, hist *History) Player {
	sorted := append([]Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		pa, pb := Points(a), Points(b)
		if pa != pb {
			return pa < pb
		}
		if a.Rating != b.Rating {
			return a.Rating < b.Rating
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	for _, p := range sorted {
		if !hist.HadBye(p.ID) {
			return p
		}
	}

	return sorted[0]
}

func removePlayer(players []Player, id PlayerID) []Player {
	ret := make([]Player, 0, len(players))
	for _, p := range players {
		if p.ID != id {
			ret = append(ret, p)
		}
	}
	return ret
}

// candidateOrder returns, for each ranked position, the positions of the
// opponents to try in order of preference. By default that is simply the
// ranked order. With highVsLow the top half meets the bottom half first:
// 1 vs n/2+1, 2 vs n/2+2 and so on.
func candidateOrder(n int, highVsLow bool) [][]int {
	half := (n + 1) / 2
	order := make([][]int, n)
	for a := 0; a < n; a++ {
		cands := make([]int, 0, n-1)
		if highVsLow {
			upper := a < half
			for b := 0; b < n; b++ {
				if b != a && (b < half) != upper {
					cands = append(cands, b)
				}
			}
			for b := 0; b < n; b++ {
				if b != a && (b < half) == upper {
					cands = append(cands, b)
				}
			}
		} else {
			for b := 0; b < n; b++ {
				if b != a {
					cands = append(cands, b)
				}
			}
		}
		order[a] = cands
	}

	return order
}

type frameState int

const (
	stateAttempt frameState = iota
	stateBacktrack
)

// searchFrame is one level of the pairing search: player a is being paired
// and next indexes the candidate to try after the current partner.
type searchFrame struct {
	state   frameState
	a       int
	next    int
	partner int
}

// searchPairings pairs every player of ranked, always taking the highest
// ranked unpaired player first, and backtracks whenever the rest cannot be
// completed. It reports false if no complete pairing exists or the step
// budget runs out.
func searchPairings(ranked []Player, order [][]int,
	canPlay func(a, b PlayerID) bool, budget int) ([][2]int, bool) {

	n := len(ranked)
	if n == 0 {
		return nil, true
	}
	used := make([]bool, n)
	firstUnused := func() int {
		for i, u := range used {
			if !u {
				return i
			}
		}
		return -1
	}

	stack := []searchFrame{{state: stateAttempt, a: 0, partner: -1}}
	used[0] = true

	for steps := 0; len(stack) > 0; steps++ {
		if steps >= budget {
			return nil, false
		}
		top := &stack[len(stack)-1]

		if top.state == stateBacktrack {
			used[top.partner] = false
			top.partner = -1
			top.state = stateAttempt
		}

		cands := order[top.a]
		partner := -1
		for top.next < len(cands) {
			b := cands[top.next]
			top.next++
			if !used[b] && canPlay(ranked[top.a].ID, ranked[b].ID) {
				partner = b
				break
			}
		}
		if partner == -1 {
			// nothing left for a; unwind to the previous player
			used[top.a] = false
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].state = stateBacktrack
			}
			continue
		}

		top.partner = partner
		used[partner] = true

		na := firstUnused()
		if na == -1 {
			matched := make([][2]int, 0, len(stack))
			for _, f := range stack {
				matched = append(matched, [2]int{f.a, f.partner})
			}
			return matched, true
		}
		used[na] = true
		stack = append(stack, searchFrame{state: stateAttempt, a: na,
			partner: -1})
	}

	return nil, false
}

// greedyPairings is the fallback when no complete pairing exists: each
// player in ranked order takes the first playable opponent, and a player
// with none receives an emergency bye.
func greedyPairings(ranked []Player, order [][]int,
	canPlay func(a, b PlayerID) bool) ([][2]int, []PlayerID) {

	used := make([]bool, len(ranked))
	var matched [][2]int
	var byes []PlayerID

	for a := range ranked {
		if used[a] {
			continue
		}
		used[a] = true
		partner := -1
		for _, b := range order[a] {
			if !used[b] && canPlay(ranked[a].ID, ranked[b].ID) {
				partner = b
				break
			}
		}
		if partner == -1 {
			byes = append(byes, ranked[a].ID)
			continue
		}
		used[partner] = true
		matched = append(matched, [2]int{a, partner})
	}

	return matched, byes
}

// assignColors gives white to whichever player is owed it more. a is the
// higher ranked of the two. On a tie the higher ranked player alternates
// colours from board to board, starting with white on the first board.
func assignColors(a, b Player, hist *History, board int) Pairing {
	ca, cb := hist.Colors[a.ID], hist.Colors[b.ID]
	aw, bw := ca.Bias(White), cb.Bias(White)

	var aWhite bool
	switch {
	case aw != bw:
		aWhite = aw < bw
	default:
		ab, bb := ca.Bias(Black), cb.Bias(Black)
		if ab != bb {
			aWhite = ab > bb
		} else {
			aWhite = board%2 == 0
		}
	}

	if aWhite {
		return Pairing{White: a.ID, Black: b.ID}
	}
	return Pairing{White: b.ID, Black: a.ID}
}

func displayName(t *Tournament, id PlayerID) string {
	if p, ok := t.PlayerByID(id); ok && p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%v", id)
}
