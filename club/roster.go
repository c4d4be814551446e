/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
	"github.com/ClarkeTj/fuprechess-tdbot/pairing"
	"github.com/PuerkitoBio/goquery"
)

var ErrNoRoster = errors.New("no roster table found")

type rosterColumn int

const (
	colIgnore rosterColumn = iota
	colID
	colName
	colRating
	colWins
	colDraws
	colLosses
)

var rosterHeaders = map[string]rosterColumn{
	"#":      colID,
	"id":     colID,
	"no":     colID,
	"no.":    colID,
	"name":   colName,
	"player": colName,
	"rating": colRating,
	"elo":    colRating,
	"w":      colWins,
	"wins":   colWins,
	"d":      colDraws,
	"draws":  colDraws,
	"l":      colLosses,
	"losses": colLosses,
}

// ParseRoster imports players from the first HTML table with a name or player
// column, such as a club members list or a standings table. Columns are
// identified by their headers. Players without an id column are numbered in
// table order.
func ParseRoster(r io.Reader) ([]pairing.Player, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse roster: %w", err)
	}

	var players []pairing.Player
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cols := rosterColumns(table)
		if !hasColumn(cols, colName) {
			return true
		}
		found = true
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return
			}
			p, ok := parseRosterRow(cells, cols)
			if !ok {
				return
			}
			if p.ID == pairing.NoPlayer {
				p.ID = pairing.PlayerID(strconv.Itoa(len(players) + 1))
			}
			players = append(players, p)
		})
		return false
	})
	if !found {
		return nil, ErrNoRoster
	}

	return players, nil
}

func rosterColumns(table *goquery.Selection) []rosterColumn {
	headers := table.Find("thead th")
	if headers.Length() == 0 {
		headers = table.Find("tr").First().Find("th")
	}
	cols := make([]rosterColumn, headers.Length())
	headers.Each(func(idx int, th *goquery.Selection) {
		key := strings.ToLower(internal.NormalizeName(th.Text()))
		cols[idx] = rosterHeaders[key]
	})
	return cols
}

func hasColumn(cols []rosterColumn, want rosterColumn) bool {
	for _, c := range cols {
		if c == want {
			return true
		}
	}
	return false
}

func parseRosterRow(cells *goquery.Selection, cols []rosterColumn) (pairing.Player, bool) {
	var p pairing.Player
	cells.Each(func(idx int, td *goquery.Selection) {
		if idx >= len(cols) {
			return
		}
		text := internal.NormalizeName(td.Text())
		switch cols[idx] {
		case colID:
			p.ID = pairing.PlayerID(strings.TrimSuffix(text, "."))
		case colName:
			p.Name = text
		case colRating:
			p.Rating = parseRating(text)
		case colWins:
			p.Wins, _ = strconv.Atoi(text)
		case colDraws:
			p.Draws, _ = strconv.Atoi(text)
		case colLosses:
			p.Losses, _ = strconv.Atoi(text)
		}
	})

	return p, p.Name != ""
}

// parseRating reads the leading digits of a rating cell so that provisional
// ratings such as "1450P12" or "1450/12" count as 1450. Unrated is 0.
func parseRating(text string) int {
	end := strings.IndexFunc(text, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if end < 0 {
		end = len(text)
	}
	rating, _ := strconv.Atoi(text[:end])
	return rating
}
