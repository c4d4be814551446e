/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ClarkeTj/fuprechess-tdbot/club"
	"github.com/ClarkeTj/fuprechess-tdbot/export"
	"github.com/ClarkeTj/fuprechess-tdbot/pairing"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func testFlags(tournament string) *siteFlags {
	return &siteFlags{
		active:     "testdata/active_tournaments.json",
		past:       "testdata/past_tournaments.json",
		systems:    "testdata/pairings.json",
		tournament: tournament,
	}
}

// copyActive gives a test its own writable active tournaments document.
func copyActive(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/active_tournaments.json")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "active_tournaments.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunList(t *testing.T) {
	output, err := runList(context.Background(), testFlags(""))
	if err != nil {
		t.Fatalf("runList: %v", err)
	}
	for _, want := range []string{"FUPRE Rapid Open", "Departmental Round Robin",
		"Freshers Open 2025"} {
		if !strings.Contains(output, want) {
			t.Errorf("list output missing %q:\n%s", want, output)
		}
	}
}

func TestRunStandings(t *testing.T) {
	output, err := runStandings(context.Background(), testFlags("1"))
	if err != nil {
		t.Fatalf("runStandings: %v", err)
	}
	wantHeader := "FUPRE Rapid Open\n" +
		"Swiss System | Time: 15+10 | 5 players | Sep 14 - Sep 28 2025\n\n" +
		"Standings after Round 1:\n\n"
	if !strings.HasPrefix(output, wantHeader) {
		t.Errorf("unexpected standings output:\n%s", output)
	}

	if _, err := runStandings(context.Background(), testFlags("Summer Open")); err == nil {
		t.Errorf("expected an error for an unknown tournament")
	}
}

func TestRunRounds(t *testing.T) {
	output, err := runRounds(context.Background(), testFlags("FUPRE Rapid Open"))
	if err != nil {
		t.Fatalf("runRounds: %v", err)
	}
	if !strings.Contains(output, "Round 1\n") || !strings.Contains(output, "1-0") {
		t.Errorf("unexpected rounds output:\n%s", output)
	}
}

func TestRunPairings(t *testing.T) {
	t.Run("swiss json", func(t *testing.T) {
		output, err := runPairings(context.Background(), testFlags("1"), true)
		if err != nil {
			t.Fatalf("runPairings: %v", err)
		}
		var prop pairing.Proposal
		if err := json.Unmarshal([]byte(output), &prop); err != nil {
			t.Fatalf("output is not a proposal: %v\n%s", err, output)
		}
		want := pairing.Proposal{Round: 2, Pairings: []pairing.Pairing{
			{White: "2", Black: "1"},
			{White: "3", Black: "5"},
			{White: "4", Note: pairing.ByeNote},
		}}
		if diff := cmp.Diff(want, prop); diff != "" {
			t.Errorf("proposal mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("round robin text", func(t *testing.T) {
		output, err := runPairings(context.Background(), testFlags("2"), false)
		if err != nil {
			t.Fatalf("runPairings: %v", err)
		}
		if !strings.Contains(output, "Suggested Round 1 Pairings:") ||
			!strings.Contains(output, "Femi(1500 0)") {
			t.Errorf("unexpected pairings output:\n%s", output)
		}
	})

	t.Run("unsupported system", func(t *testing.T) {
		output, err := runPairings(context.Background(), testFlags("3"), false)
		if err != nil {
			t.Fatalf("runPairings: %v", err)
		}
		if !strings.Contains(output, `Pairing system "knockout" not supported yet.`) {
			t.Errorf("unexpected output:\n%s", output)
		}
	})
}

func TestRunSchedule(t *testing.T) {
	output, err := runSchedule(context.Background(), testFlags("2"))
	if err != nil {
		t.Fatalf("runSchedule: %v", err)
	}
	if !strings.Contains(output, "Round 3\n") || strings.Contains(output, "Round 4") {
		t.Errorf("expected a three round schedule:\n%s", output)
	}

	if _, err := runSchedule(context.Background(), testFlags("1")); err == nil {
		t.Errorf("expected an error for a swiss tournament")
	}
}

func TestRunFinal(t *testing.T) {
	output, err := runFinal(context.Background(), testFlags("Freshers Open 2025"))
	if err != nil {
		t.Fatalf("runFinal: %v", err)
	}
	if !strings.Contains(output, "1  Ada Obi") {
		t.Errorf("unexpected final standings:\n%s", output)
	}
}

func TestRunCommit(t *testing.T) {
	ctx := context.Background()
	path := copyActive(t)
	sf := testFlags("1")
	sf.active = path

	output, err := runCommit(ctx, sf, path, true)
	if err != nil {
		t.Fatalf("runCommit: %v", err)
	}
	if !strings.Contains(output, "Recorded round 2 of FUPRE Rapid Open") {
		t.Errorf("unexpected commit output:\n%s", output)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := club.ParseDocument(data)
	if err != nil {
		t.Fatalf("committed document does not parse: %v", err)
	}
	tourney := doc.ActiveTournaments[0]
	if len(tourney.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(tourney.Rounds))
	}
	if p, _ := tourney.PlayerByID("4"); p.Wins != 1 {
		t.Errorf("bye not credited to Dayo: %+v", p)
	}
	if tourney.Rules != nil {
		t.Errorf("catalogue rules leaked into the document: %+v", tourney.Rules)
	}
	if err := pairing.Validate(&tourney); err != nil {
		t.Errorf("committed tournament does not validate: %v", err)
	}
}

func TestRunCommitRoundRobinCompletes(t *testing.T) {
	ctx := context.Background()
	path := copyActive(t)
	sf := testFlags("Departmental Round Robin")
	sf.active = path

	for r := 1; r <= 3; r++ {
		if _, err := runCommit(ctx, sf, path, false); err != nil {
			t.Fatalf("commit of round %d: %v", r, err)
		}
	}
	_, err := runCommit(ctx, sf, path, false)
	if err == nil || !strings.Contains(err.Error(), "Round Robin schedule complete.") {
		t.Errorf("expected the schedule to be complete, got %v", err)
	}

	output, err := runPairings(ctx, sf, false)
	if err != nil {
		t.Fatalf("runPairings: %v", err)
	}
	if !strings.Contains(output, "Round Robin schedule complete.") {
		t.Errorf("unexpected pairings output:\n%s", output)
	}
}

func TestRunExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rapid.xlsx")
	if _, err := runExport(context.Background(), testFlags("1"), out, true); err != nil {
		t.Fatalf("runExport: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f.Close()

	want := []string{export.StandingsSheet, export.RoundSheet(1), export.NextRoundSheet}
	if diff := cmp.Diff(want, f.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRoster(t *testing.T) {
	output, err := runRoster(context.Background(), "testdata/roster.html", "")
	if err != nil {
		t.Fatalf("runRoster: %v", err)
	}
	var players []pairing.Player
	if err := json.Unmarshal([]byte(output), &players); err != nil {
		t.Fatalf("roster output is not JSON: %v", err)
	}
	if len(players) != 3 || players[0].Name != "Ada Obi" {
		t.Errorf("unexpected players %+v", players)
	}

	if _, err := runRoster(context.Background(), "testdata/pairings.json", ""); err == nil {
		t.Errorf("expected an error importing a document without a table")
	}
}
