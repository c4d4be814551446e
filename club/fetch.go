/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
	"github.com/ClarkeTj/fuprechess-tdbot/s3store"
)

// openStore is replaced in tests.
var openStore = func(ctx context.Context, bucket string) (objectStore, error) {
	return s3store.Open(ctx, bucket)
}

type objectStore interface {
	ReadObject(ctx context.Context, key string) ([]byte, error)
	WriteObject(ctx context.Context, key string, data []byte,
		contentType string) error
}

func isHTTP(location string) bool {
	return strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://")
}

// Fetch reads the document at location, which may be a local path, an
// http(s) URL or an s3://bucket/key location. client is only used for URLs;
// nil means http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client,
	location string) ([]byte, error) {

	if bucket, key, ok := s3store.ParseLocation(location); ok {
		store, err := openStore(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("unable to open %v: %w", location, err)
		}
		return store.ReadObject(ctx, key)
	}
	if isHTTP(location) {
		return fetchURL(ctx, client, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("unable to read %v: %w", location, err)
	}
	return data, nil
}

func fetchURL(ctx context.Context, client *http.Client,
	url string) ([]byte, error) {

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read %v: %w", url, err)
	}

	return data, nil
}

// Save writes data to a local path or an s3://bucket/key location.
func Save(ctx context.Context, location string, data []byte) error {
	if bucket, key, ok := s3store.ParseLocation(location); ok {
		store, err := openStore(ctx, bucket)
		if err != nil {
			return fmt.Errorf("unable to open %v: %w", location, err)
		}
		return store.WriteObject(ctx, key, data, contentType(key))
	}
	if isHTTP(location) {
		return fmt.Errorf("unable to save %v: http locations are read-only",
			location)
	}

	if err := os.WriteFile(location, data, 0644); err != nil {
		return fmt.Errorf("unable to save %v: %w", location, err)
	}
	return nil
}

func contentType(key string) string {
	switch ext := path.Ext(key); ext {
	case ".json":
		return "application/json"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return mime.TypeByExtension(ext)
	}
}
