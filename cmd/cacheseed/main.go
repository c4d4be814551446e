/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ClarkeTj/fuprechess-tdbot/club"
	"github.com/ClarkeTj/fuprechess-tdbot/internal"
)

// this program exists just to seed the shared http cache with the club
// documents so the bot's first requests after a deploy are served from S3

func main() {
	f := flag.NewFlagSet("cacheseed", flag.ExitOnError)
	bucket := f.String("cachebucket", internal.WebCacheBucket,
		"S3 bucket backing the http cache")
	pause := f.Duration("pause", 2*time.Second,
		"delay between fetches to avoid pegging the site")
	f.Parse(os.Args[1:])

	locations := f.Args()
	if len(locations) == 0 {
		locations = []string{internal.DefaultActiveURL(),
			internal.DefaultPastURL(), internal.DefaultSystemsURL()}
	}

	ctx := context.Background()
	client := internal.NewCachedHttpClient(ctx, *bucket,
		internal.DocumentMaxAge)
	if seedCache(ctx, os.Stdout, client, locations, *pause) == 0 {
		os.Exit(1)
	}
}

// seedCache fetches each location through client and reports how many were
// fetched. Failures are logged and skipped.
func seedCache(ctx context.Context, out io.Writer, client *http.Client,
	locations []string, pause time.Duration) int {

	seeded := 0
	for idx, location := range locations {
		if idx > 0 {
			time.Sleep(pause)
		}
		data, err := club.Fetch(ctx, client, location)
		if err != nil {
			// best effort
			log.Printf("cacheseed: %v", err)
			continue
		}

		seeded++
		fmt.Fprintf(out, "seeded %v (%v bytes)\n", location, len(data))
	}

	return seeded
}
