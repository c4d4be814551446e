/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
)

func TestSeedCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Write([]byte(`{"activeTournaments":[]}`))
	}))
	defer srv.Close()

	client := internal.NewCachedHttpClient(context.Background(), "",
		internal.DocumentMaxAge)
	locations := []string{srv.URL + "/active_tournaments.json",
		srv.URL + "/missing.json"}

	var sb strings.Builder
	if n := seedCache(context.Background(), &sb, client, locations, 0); n != 1 {
		t.Errorf("seedCache() = %v; want 1", n)
	}
	want := "seeded " + srv.URL + "/active_tournaments.json (24 bytes)\n"
	if sb.String() != want {
		t.Errorf("unexpected output %q; want %q", sb.String(), want)
	}

	// a second pass is served from the cache
	sb.Reset()
	seedCache(context.Background(), &sb, client, locations[:1], 0)
	if hits.Load() != 1 {
		t.Errorf("origin hit %v times; want 1", hits.Load())
	}
}
