/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ClarkeTj/fuprechess-tdbot/s3store"
	"github.com/gregjones/httpcache"
)

// NewCachedHttpClient returns an http.Client whose responses are cached in
// the given S3 bucket for maxAge. An empty bucket, or one that cannot be
// initialized, falls back to an in-memory cache.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration) *http.Client {

	var cache httpcache.Cache
	if bucket != "" {
		store := s3store.New(ctx, bucket, true, true)
		if err := store.Init(); err != nil {
			log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to in-memory cache", err)
		} else {
			cache = store
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	return &http.Client{Transport: newCachingTransport(cache,
		http.DefaultTransport, maxAge)}
}

func newCachingTransport(cache httpcache.Cache, rt http.RoundTripper,
	maxAge time.Duration) *httpcache.Transport {

	hc := httpcache.NewTransport(cache)
	// the documents are served as static files whose headers usually forbid
	// caching, so impose our own TTL
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: rt,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return hc
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
