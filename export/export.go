/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package export writes a tournament to an Excel workbook: the standings,
 * every recorded round and optionally the proposed next round.
 */
package export

import (
	"fmt"
	"io"

	"github.com/ClarkeTj/fuprechess-tdbot/pairing"
	"github.com/xuri/excelize/v2"
)

const (
	StandingsSheet = "Standings"
	NextRoundSheet = "Next Round"
)

func RoundSheet(n int) string {
	return fmt.Sprintf("Round %d", n)
}

// Workbook builds the workbook for t. prop may be nil.
func Workbook(t *pairing.Tournament, prop *pairing.Proposal) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1F4E79"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	w := &writer{f: f, header: header}

	if err := w.standings(t); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}
	for _, r := range t.Rounds {
		if err := w.round(t, RoundSheet(r.Number), r.Pairings, "Result"); err != nil {
			return nil, fmt.Errorf("writing round %d sheet: %w", r.Number, err)
		}
	}
	if prop != nil {
		if err := w.round(t, NextRoundSheet, prop.Pairings, "Note"); err != nil {
			return nil, fmt.Errorf("writing next round sheet: %w", err)
		}
		row := len(prop.Pairings) + 3
		for _, warning := range prop.Warnings {
			if err := w.row(NextRoundSheet, row, []interface{}{"Warning", warning}); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex(StandingsSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	return f, nil
}

// Write streams the workbook for t to out.
func Write(out io.Writer, t *pairing.Tournament, prop *pairing.Proposal) error {
	f, err := Workbook(t, prop)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(out)
}

type writer struct {
	f      *excelize.File
	header int
}

func (w *writer) row(sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

func (w *writer) headerRow(sheet string, headers []string, widths []float64) error {
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := w.row(sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		return err
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	return w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *writer) standings(t *pairing.Tournament) error {
	err := w.headerRow(StandingsSheet,
		[]string{"Place", "Name", "Rating", "W", "D", "L", "Pts"},
		[]float64{8, 28, 10, 6, 6, 6, 8})
	if err != nil {
		return err
	}

	for idx, s := range pairing.ComputeStandings(t.Players) {
		var rating interface{} = s.Player.Rating
		if s.Player.Rating == 0 {
			rating = "unr."
		}
		err := w.row(StandingsSheet, idx+2, []interface{}{s.Rank, s.Player.Name,
			rating, s.Player.Wins, s.Player.Draws, s.Player.Losses, s.Points})
		if err != nil {
			return err
		}
	}

	return nil
}

// round writes boards first and byes after them, as the text output does.
func (w *writer) round(t *pairing.Tournament, sheet string,
	pairings []pairing.Pairing, lastCol string) error {

	err := w.headerRow(sheet, []string{"Board", "White", "Black", lastCol},
		[]float64{8, 28, 28, 16})
	if err != nil {
		return err
	}

	row := 2
	board := 1
	for _, p := range pairings {
		if p.IsBye() {
			continue
		}
		last := p.Note
		if lastCol == "Result" && p.Result != "" {
			last = p.Result
		}
		err := w.row(sheet, row, []interface{}{board, name(t, p.White),
			name(t, p.Black), last})
		if err != nil {
			return err
		}
		row++
		board++
	}
	for _, p := range pairings {
		if !p.IsBye() {
			continue
		}
		note := p.Note
		if note == "" {
			note = "BYE"
		}
		err := w.row(sheet, row, []interface{}{"n/a", name(t, p.ByePlayer()),
			note, p.Result})
		if err != nil {
			return err
		}
		row++
	}

	return nil
}

func name(t *pairing.Tournament, id pairing.PlayerID) string {
	if p, ok := t.PlayerByID(id); ok {
		return p.Name
	}
	return fmt.Sprintf("#%v", id)
}
