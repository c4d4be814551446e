/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
	"github.com/ClarkeTj/fuprechess-tdbot/pairing"
)

var ErrTournamentNotFound = errors.New("tournament not found")

// Document is the active tournaments document.
type Document struct {
	ActiveTournaments []pairing.Tournament `json:"activeTournaments"`
}

type FinalStanding struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

type CompletedTournament struct {
	Name           string          `json:"name"`
	StartDate      string          `json:"startDate,omitempty"`
	EndDate        string          `json:"endDate,omitempty"`
	FinalStandings []FinalStanding `json:"finalStandings"`
}

// Archive is the completed tournaments document.
type Archive struct {
	CompletedTournaments []CompletedTournament `json:"completedTournaments"`
}

func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse active tournaments: %w", err)
	}
	for idx := range doc.ActiveTournaments {
		t := &doc.ActiveTournaments[idx]
		if t.Players == nil {
			t.Players = []pairing.Player{}
		}
		if t.Rounds == nil {
			t.Rounds = []pairing.Round{}
		}
	}

	return &doc, nil
}

// Encode renders the document the way it is published: indented JSON with a
// trailing newline.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func ParseArchive(data []byte) (*Archive, error) {
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unable to parse completed tournaments: %w", err)
	}
	return &a, nil
}

// FindTournament looks a tournament up by name (case-insensitively) or by its
// 1-based position in the document.
func (d *Document) FindTournament(ref string) (*pairing.Tournament, error) {
	idx := findIndex(len(d.ActiveTournaments), ref, func(i int) string {
		return d.ActiveTournaments[i].Name
	})
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTournamentNotFound, ref)
	}
	return &d.ActiveTournaments[idx], nil
}

func (a *Archive) FindTournament(ref string) (*CompletedTournament, error) {
	idx := findIndex(len(a.CompletedTournaments), ref, func(i int) string {
		return a.CompletedTournaments[i].Name
	})
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTournamentNotFound, ref)
	}
	return &a.CompletedTournaments[idx], nil
}

func findIndex(n int, ref string, name func(i int) string) int {
	ref = strings.TrimSpace(ref)
	if ref == "" && n == 1 {
		return 0
	}
	for i := 0; i < n; i++ {
		if strings.EqualFold(internal.NormalizeName(name(i)),
			internal.NormalizeName(ref)) {
			return i
		}
	}
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= n {
		return pos - 1
	}

	return -1
}

// SortedStandings returns the final standings by points, highest first.
// Entries with equal points keep their document order.
func (ct *CompletedTournament) SortedStandings() []FinalStanding {
	ret := append([]FinalStanding(nil), ct.FinalStandings...)
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Points > ret[j].Points
	})
	return ret
}

// EventDates parses the start and end dates of a tournament. Missing dates
// are returned as the zero time.
func EventDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := internal.ParseDateOrZero(startDate)
	if err != nil {
		return time.Time{}, time.Time{},
			fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := internal.ParseDateOrZero(endDate)
	if err != nil {
		return time.Time{}, time.Time{},
			fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{},
			fmt.Errorf("end date %q precedes start date %q", endDate, startDate)
	}

	return start, end, nil
}

// FormatDates renders a date range for display, e.g. "Sep 14 - Sep 28 2025".
func FormatDates(start, end time.Time) string {
	switch {
	case start.IsZero() && end.IsZero():
		return "-"
	case end.IsZero() || start.Equal(end):
		return start.Format("Jan 2 2006")
	case start.IsZero():
		return "until " + end.Format("Jan 2 2006")
	case start.Year() == end.Year():
		return start.Format("Jan 2") + " - " + end.Format("Jan 2 2006")
	}
	return start.Format("Jan 2 2006") + " - " + end.Format("Jan 2 2006")
}
