/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
)

// BuildListOutput summarizes the active and completed tournaments of a site.
func BuildListOutput(site *Site) string {
	var sb strings.Builder

	sb.WriteString("Active Tournaments:\n\n")
	if len(site.Active.ActiveTournaments) == 0 {
		sb.WriteString("No active tournaments.\n\n")
	} else {
		var rows [][]string
		for idx, t := range site.Active.ActiveTournaments {
			dates := "-"
			if start, end, err := EventDates(t.StartDate, t.EndDate); err == nil {
				dates = FormatDates(start, end)
			}
			tc := t.TimeControl
			if tc == "" {
				tc = "-"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%v.", idx+1),
				t.Name,
				site.Systems.DisplayName(t.PairingSystemID),
				tc,
				strconv.Itoa(len(t.Players)),
				strconv.Itoa(len(t.Rounds)),
				dates,
			})
		}
		internal.WriteTable(&sb, []string{"#", "Name", "System", "Time",
			"Players", "Rounds", "Dates"}, rows)
	}

	sb.WriteString("Completed Tournaments:\n\n")
	if len(site.Past.CompletedTournaments) == 0 {
		sb.WriteString("No completed tournaments yet.\n")
		return sb.String()
	}
	var rows [][]string
	for idx, ct := range site.Past.CompletedTournaments {
		winner := "-"
		if standings := ct.SortedStandings(); len(standings) > 0 {
			winner = standings[0].Name
		}
		rows = append(rows, []string{fmt.Sprintf("%v.", idx+1), ct.Name, winner})
	}
	internal.WriteTable(&sb, []string{"#", "Name", "Winner"}, rows)

	return sb.String()
}

// BuildFinalOutput formats the final standings of a completed tournament.
func BuildFinalOutput(ct *CompletedTournament) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v Final Standings:\n\n", ct.Name))
	standings := ct.SortedStandings()
	if len(standings) == 0 {
		sb.WriteString("No standings recorded\n")
		return sb.String()
	}

	var rows [][]string
	for idx, s := range standings {
		rows = append(rows, []string{strconv.Itoa(idx + 1), s.Name,
			strconv.FormatFloat(s.Points, 'f', -1, 64)})
	}
	internal.WriteTable(&sb, []string{"#", "Player", "Points"}, rows)

	return sb.String()
}
