/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/ClarkeTj/fuprechess-tdbot/club"
	"github.com/ClarkeTj/fuprechess-tdbot/export"
	"github.com/ClarkeTj/fuprechess-tdbot/internal"
	"github.com/ClarkeTj/fuprechess-tdbot/pairing"
)

// siteFlags are shared by every command that reads the club's documents.
type siteFlags struct {
	active      string
	past        string
	systems     string
	cacheBucket string
	tournament  string
}

func (sf *siteFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&sf.active, "active", internal.DefaultActiveURL(),
		"Active tournaments document (path, URL or s3://bucket/key)")
	fs.StringVar(&sf.past, "past", internal.DefaultPastURL(),
		"Completed tournaments document")
	fs.StringVar(&sf.systems, "systems", internal.DefaultSystemsURL(),
		"Pairing systems catalogue")
	fs.StringVar(&sf.cacheBucket, "cachebucket", "",
		"S3 bucket used to cache http fetches")
	fs.StringVar(&sf.tournament, "t", "", "Tournament name or position")
}

func (sf *siteFlags) client(ctx context.Context) *http.Client {
	return internal.NewCachedHttpClient(ctx, sf.cacheBucket,
		internal.DocumentMaxAge)
}

// load fetches the documents a command needs; withPast adds the completed
// tournaments document.
func (sf *siteFlags) load(ctx context.Context, withPast bool) (*club.Site, error) {
	cfg := club.SiteConfig{
		ActiveLocation:  sf.active,
		SystemsLocation: sf.systems,
		Client:          sf.client(ctx),
	}
	if withPast {
		cfg.PastLocation = sf.past
	}
	return club.LoadSite(ctx, cfg)
}

// selected loads the site and returns the selected tournament with its
// rules resolved against the catalogue.
func (sf *siteFlags) selected(ctx context.Context) (*club.Site,
	*pairing.Tournament, error) {

	site, err := sf.load(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	t, err := site.Active.FindTournament(sf.tournament)
	if err != nil {
		return nil, nil, err
	}

	return site, club.ResolveRules(t, site.Systems), nil
}

func runList(ctx context.Context, sf *siteFlags) (string, error) {
	site, err := sf.load(ctx, true)
	if err != nil {
		return "", err
	}
	return club.BuildListOutput(site), nil
}

func tournamentHeader(site *club.Site, t *pairing.Tournament) string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteString("\n")
	details := []string{site.Systems.DisplayName(t.PairingSystemID)}
	if t.TimeControl != "" {
		details = append(details, "Time: "+t.TimeControl)
	}
	details = append(details, fmt.Sprintf("%d players", len(t.Players)))
	if start, end, err := club.EventDates(t.StartDate, t.EndDate); err == nil &&
		!(start.IsZero() && end.IsZero()) {
		details = append(details, club.FormatDates(start, end))
	}
	sb.WriteString(strings.Join(details, " | "))
	sb.WriteString("\n\n")

	return sb.String()
}

func runStandings(ctx context.Context, sf *siteFlags) (string, error) {
	site, t, err := sf.selected(ctx)
	if err != nil {
		return "", err
	}
	if err := pairing.Validate(t); err != nil {
		return "", err
	}
	return tournamentHeader(site, t) + pairing.BuildStandingsOutput(t), nil
}

func runRounds(ctx context.Context, sf *siteFlags) (string, error) {
	site, t, err := sf.selected(ctx)
	if err != nil {
		return "", err
	}
	if err := pairing.Validate(t); err != nil {
		return "", err
	}
	return tournamentHeader(site, t) + pairing.BuildRoundsOutput(t), nil
}

// proposeNextRound runs the engine and translates the outcomes that are not
// failures into the messages players see.
func proposeNextRound(t *pairing.Tournament) (*pairing.Proposal, string, error) {
	prop, err := pairing.NextRound(t)
	switch {
	case errors.Is(err, pairing.ErrScheduleComplete):
		return nil, "Round Robin schedule complete.\n", nil
	case errors.Is(err, pairing.ErrUnsupportedSystem):
		return nil, fmt.Sprintf("Pairing system %q not supported yet.\n",
			t.PairingSystemID), nil
	case err != nil:
		return nil, "", err
	}
	for _, w := range prop.Warnings {
		log.Printf("fcctd.pairings: warning: %v: %v", t.Name, w)
	}

	return prop, pairing.BuildProposalOutput(t, prop), nil
}

func runPairings(ctx context.Context, sf *siteFlags, asJSON bool) (string, error) {
	site, t, err := sf.selected(ctx)
	if err != nil {
		return "", err
	}
	prop, msg, err := proposeNextRound(t)
	if err != nil {
		return "", err
	}
	if prop != nil && asJSON {
		data, err := json.MarshalIndent(prop, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	return tournamentHeader(site, t) + msg, nil
}

func runSchedule(ctx context.Context, sf *siteFlags) (string, error) {
	site, t, err := sf.selected(ctx)
	if err != nil {
		return "", err
	}
	if t.PairingSystemID != pairing.SystemRoundRobin {
		return "", fmt.Errorf("%v is paired with %v; only round robin tournaments have a fixed schedule",
			t.Name, site.Systems.DisplayName(t.PairingSystemID))
	}
	if err := pairing.Validate(t); err != nil {
		return "", err
	}

	ids := make([]pairing.PlayerID, 0, len(t.Players))
	for _, p := range t.Players {
		ids = append(ids, p.ID)
	}
	schedule := pairing.RoundRobinSchedule(ids, t.EffectiveRules().DoubleRound)

	return tournamentHeader(site, t) + pairing.BuildScheduleOutput(t, schedule), nil
}

func runFinal(ctx context.Context, sf *siteFlags) (string, error) {
	site, err := sf.load(ctx, true)
	if err != nil {
		return "", err
	}
	ct, err := site.Past.FindTournament(sf.tournament)
	if err != nil {
		return "", err
	}
	return club.BuildFinalOutput(ct), nil
}

func runExport(ctx context.Context, sf *siteFlags, out string,
	withNext bool) (string, error) {

	_, t, err := sf.selected(ctx)
	if err != nil {
		return "", err
	}
	if err := pairing.Validate(t); err != nil {
		return "", err
	}
	var prop *pairing.Proposal
	if withNext {
		prop, _, err = proposeNextRound(t)
		if err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, t, prop); err != nil {
		return "", fmt.Errorf("unable to build workbook: %w", err)
	}
	if err := club.Save(ctx, out, buf.Bytes()); err != nil {
		return "", err
	}

	return fmt.Sprintf("Wrote %v to %v\n", t.Name, out), nil
}

// runCommit records the suggested next round of the selected tournament and
// writes the updated document to out.
func runCommit(ctx context.Context, sf *siteFlags, out string,
	creditByes bool) (string, error) {

	site, err := sf.load(ctx, false)
	if err != nil {
		return "", err
	}
	t, err := site.Active.FindTournament(sf.tournament)
	if err != nil {
		return "", err
	}

	prop, msg, err := proposeNextRound(club.ResolveRules(t, site.Systems))
	if err != nil {
		return "", err
	}
	if prop == nil {
		return "", fmt.Errorf("nothing to commit: %v",
			strings.TrimSuffix(msg, "\n"))
	}
	*t = *pairing.CommitRound(t, prop, pairing.CommitOptions{
		CreditByes: creditByes,
	})

	data, err := site.Active.Encode()
	if err != nil {
		return "", fmt.Errorf("unable to encode active tournaments: %w", err)
	}
	if err := club.Save(ctx, out, data); err != nil {
		return "", err
	}

	return msg + fmt.Sprintf("Recorded round %v of %v in %v\n", prop.Round,
		t.Name, out), nil
}

func runRoster(ctx context.Context, in string, cacheBucket string) (string, error) {
	client := internal.NewCachedHttpClient(ctx, cacheBucket,
		internal.DocumentMaxAge)
	data, err := club.Fetch(ctx, client, in)
	if err != nil {
		return "", err
	}
	players, err := club.ParseRoster(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unable to import roster from %v: %w", in, err)
	}

	out, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
