/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
	"github.com/ClarkeTj/fuprechess-tdbot/s3store"
)

type memStore struct {
	bucket  string
	objects map[string][]byte
	types   map[string]string
}

func (m *memStore) ReadObject(_ context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, s3store.ErrNotFound
	}
	return data, nil
}

func (m *memStore) WriteObject(_ context.Context, key string, data []byte,
	contentType string) error {
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

// useMemStore points s3:// locations at an in-memory bucket for the test.
func useMemStore(t *testing.T) *memStore {
	t.Helper()
	mem := &memStore{bucket: "club-docs", objects: make(map[string][]byte),
		types: make(map[string]string)}
	saved := openStore
	openStore = func(_ context.Context, bucket string) (objectStore, error) {
		if bucket != mem.bucket {
			return nil, errors.New("no such bucket")
		}
		return mem, nil
	}
	t.Cleanup(func() { openStore = saved })
	return mem
}

func TestFetchFile(t *testing.T) {
	data, err := Fetch(context.Background(), nil, "testdata/pairings.json")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(string(data), `"systems"`) {
		t.Errorf("unexpected contents %s", data)
	}

	if _, err := Fetch(context.Background(), nil, "testdata/missing.json"); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		if r.Header.Get("User-Agent") != internal.UserAgent {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Path != "/pairings.json" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, "testdata/pairings.json")
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.Client(), srv.URL+"/pairings.json")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := ParseSystems(data); err != nil {
		t.Errorf("fetched catalogue does not parse: %v", err)
	}

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/nope.json")
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Errorf("expected a 404 error, got %v", err)
	}
}

func TestFetchAndSaveS3(t *testing.T) {
	mem := useMemStore(t)
	ctx := context.Background()

	if err := Save(ctx, "s3://club-docs/active_tournaments.json",
		[]byte(`{"activeTournaments":[]}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := mem.objects["active_tournaments.json"]; !ok {
		t.Fatalf("object not written to the bucket")
	}
	if mem.types["active_tournaments.json"] != "application/json" {
		t.Errorf("content type = %q", mem.types["active_tournaments.json"])
	}

	data, err := Fetch(ctx, nil, "s3://club-docs/active_tournaments.json")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != `{"activeTournaments":[]}` {
		t.Errorf("Fetch = %s", data)
	}

	_, err = Fetch(ctx, nil, "s3://club-docs/past_tournaments.json")
	if !errors.Is(err, s3store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := Fetch(ctx, nil, "s3://other/past_tournaments.json"); err == nil {
		t.Errorf("expected an error for an unknown bucket")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active_tournaments.json")
	if err := Save(context.Background(), path, []byte("{}\n")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{}\n" {
		t.Errorf("saved file = %q, %v", data, err)
	}

	if err := Save(context.Background(), "https://example.com/x.json", nil); err == nil {
		t.Errorf("expected an error saving to an http location")
	}
}
