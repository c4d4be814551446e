/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
)

// BuildStandingsOutput formats the current standings into an aligned table
func BuildStandingsOutput(t *Tournament) string {
	var sb strings.Builder

	if len(t.Rounds) == 0 {
		sb.WriteString("Standings before Round 1:\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Standings after Round %v:\n\n",
			len(t.Rounds)))
	}
	if len(t.Players) == 0 {
		sb.WriteString("No players registered\n")
		return sb.String()
	}

	var rows [][]string
	priorRank := 0
	for _, s := range ComputeStandings(t.Players) {
		// only the first of a group of tied players shows the place
		place := ""
		if s.Rank != priorRank {
			place = fmt.Sprintf("%v.", s.Rank)
			priorRank = s.Rank
		}
		rows = append(rows, []string{
			place,
			s.Player.Name,
			ratingString(s.Player.Rating),
			strconv.Itoa(s.Player.Wins),
			strconv.Itoa(s.Player.Draws),
			strconv.Itoa(s.Player.Losses),
			fmt.Sprintf("%.1f", s.Points),
		})
	}
	internal.WriteTable(&sb, []string{"Place", "Name", "Rating", "W", "D", "L", "Pts"},
		rows)

	return sb.String()
}

// BuildProposalOutput formats a proposed round. Byes are listed after the
// boards.
func BuildProposalOutput(t *Tournament, p *Proposal) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Suggested Round %v Pairings:\n\n", p.Round))
	if len(p.Pairings) == 0 {
		sb.WriteString("No pairings to suggest\n")
		return sb.String()
	}
	internal.WriteTable(&sb, []string{"Board", "White", "Black"}, pairingRows(t, p.Pairings, false))
	for _, w := range p.Warnings {
		sb.WriteString(fmt.Sprintf("! %v\n", w))
	}
	sb.WriteString("* Next round pairings will be available once the current round is completed.\n")

	return sb.String()
}

// BuildRoundsOutput formats every recorded round along with its results.
func BuildRoundsOutput(t *Tournament) string {
	if len(t.Rounds) == 0 {
		return "No rounds recorded yet.\n"
	}

	var sb strings.Builder
	for _, r := range t.Rounds {
		sb.WriteString(fmt.Sprintf("Round %v\n", r.Number))
		internal.WriteTable(&sb, []string{"Board", "White", "Black", "Result"},
			pairingRows(t, r.Pairings, true))
	}

	return sb.String()
}

// BuildScheduleOutput formats a full round robin schedule.
func BuildScheduleOutput(t *Tournament, schedule [][]Pairing) string {
	if len(schedule) == 0 {
		return "Not enough players for a schedule\n"
	}

	var sb strings.Builder
	for idx, round := range schedule {
		marker := ""
		if idx < len(t.Rounds) {
			marker = " (played)"
		}
		sb.WriteString(fmt.Sprintf("Round %v%v\n", idx+1, marker))
		internal.WriteTable(&sb, []string{"Board", "White", "Black"},
			pairingRows(t, round, false))
	}

	return sb.String()
}

func pairingRows(t *Tournament, pairings []Pairing, withResult bool) [][]string {
	var rows [][]string
	board := 1
	var byes [][]string
	for _, p := range pairings {
		if p.IsBye() {
			note := p.Note
			if note == "" {
				note = "BYE"
			}
			row := []string{"n/a", playerLabel(t, p.ByePlayer()), note}
			if withResult {
				row = append(row, p.Result)
			}
			byes = append(byes, row)
			continue
		}
		row := []string{fmt.Sprintf("%d.", board), playerLabel(t, p.White),
			playerLabel(t, p.Black)}
		if withResult {
			res := p.Result
			if res == "" {
				res = p.Note
			}
			row = append(row, res)
		}
		rows = append(rows, row)
		board++
	}

	return append(rows, byes...)
}

func playerLabel(t *Tournament, id PlayerID) string {
	p, ok := t.PlayerByID(id)
	if !ok {
		return fmt.Sprintf("#%v", id)
	}
	return fmt.Sprintf("%s(%s %v)", p.Name, ratingString(p.Rating),
		ScoreToString(Points(p)))
}

func ratingString(r int) string {
	if r == 0 {
		return "unr."
	}
	return strconv.Itoa(r)
}
