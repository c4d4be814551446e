/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSite(t *testing.T) {
	srv := httptest.NewServer(http.FileServer(http.Dir("testdata")))
	defer srv.Close()

	site, err := LoadSite(context.Background(), SiteConfig{
		ActiveLocation:  srv.URL + "/active_tournaments.json",
		PastLocation:    "testdata/past_tournaments.json",
		SystemsLocation: srv.URL + "/pairings.json",
		Client:          srv.Client(),
	})
	if err != nil {
		t.Fatalf("LoadSite: %v", err)
	}
	if len(site.Active.ActiveTournaments) != 3 {
		t.Errorf("expected 3 active tournaments, got %d",
			len(site.Active.ActiveTournaments))
	}
	if len(site.Past.CompletedTournaments) != 1 {
		t.Errorf("expected 1 completed tournament, got %d",
			len(site.Past.CompletedTournaments))
	}
	if len(site.Systems.Systems) != 2 {
		t.Errorf("expected 2 pairing systems, got %d", len(site.Systems.Systems))
	}
}

func TestLoadSitePartial(t *testing.T) {
	site, err := LoadSite(context.Background(), SiteConfig{
		ActiveLocation: "testdata/active_tournaments.json",
	})
	if err != nil {
		t.Fatalf("LoadSite: %v", err)
	}
	if site.Past == nil || site.Systems == nil {
		t.Fatalf("unconfigured documents should load as empty")
	}
	if len(site.Past.CompletedTournaments) != 0 || len(site.Systems.Systems) != 0 {
		t.Errorf("unconfigured documents should be empty")
	}
}

func TestLoadSiteFailure(t *testing.T) {
	_, err := LoadSite(context.Background(), SiteConfig{
		ActiveLocation:  "testdata/active_tournaments.json",
		PastLocation:    "testdata/missing.json",
		SystemsLocation: "testdata/pairings.json",
	})
	if err == nil || !strings.Contains(err.Error(), "completed tournaments") {
		t.Errorf("expected a completed tournaments error, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "pairings.yaml")
	if err := os.WriteFile(bad, []byte("systems: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadSite(context.Background(), SiteConfig{SystemsLocation: bad})
	if err == nil {
		t.Errorf("expected an error for a malformed catalogue")
	}
}
