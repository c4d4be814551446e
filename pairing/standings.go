/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"sort"
	"strings"
)

type Standing struct {
	Rank   int
	Player Player
	Points float64
}

// rankedLess orders players by points, then rating (both descending), then
// name and id ascending so that the order is total.
func rankedLess(a, b Player) bool {
	pa, pb := Points(a), Points(b)
	if pa != pb {
		return pa > pb
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// Ranked returns a copy of players in standings order.
func Ranked(players []Player) []Player {
	ret := append([]Player(nil), players...)
	sort.SliceStable(ret, func(i, j int) bool {
		return rankedLess(ret[i], ret[j])
	})

	return ret
}

// ComputeStandings ranks players. Players tied on points share a rank and
// the next point total resumes at its position, e.g. 1, 1, 3.
func ComputeStandings(players []Player) []Standing {
	ranked := Ranked(players)
	standings := make([]Standing, 0, len(ranked))

	rank := 0
	for idx, p := range ranked {
		pts := Points(p)
		if idx == 0 || pts != standings[idx-1].Points {
			rank = idx + 1
		}
		standings = append(standings, Standing{
			Rank:   rank,
			Player: p,
			Points: pts,
		})
	}

	return standings
}
