/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package club

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// SiteConfig names where each of the club's documents lives. An empty
// location is skipped.
type SiteConfig struct {
	ActiveLocation  string
	PastLocation    string
	SystemsLocation string

	// Client is used for http(s) locations
	Client *http.Client
}

type Site struct {
	Active  *Document
	Past    *Archive
	Systems *Catalogue
}

// LoadSite fetches and parses all configured documents concurrently. Any
// failure fails the whole load.
func LoadSite(ctx context.Context, cfg SiteConfig) (*Site, error) {
	site := &Site{
		Active:  &Document{},
		Past:    &Archive{},
		Systems: &Catalogue{},
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.ActiveLocation != "" {
		g.Go(func() error {
			data, err := Fetch(ctx, cfg.Client, cfg.ActiveLocation)
			if err != nil {
				return fmt.Errorf("error loading active tournaments: %w", err)
			}
			site.Active, err = ParseDocument(data)
			return err
		})
	}
	if cfg.PastLocation != "" {
		g.Go(func() error {
			data, err := Fetch(ctx, cfg.Client, cfg.PastLocation)
			if err != nil {
				return fmt.Errorf("error loading completed tournaments: %w", err)
			}
			site.Past, err = ParseArchive(data)
			return err
		})
	}
	if cfg.SystemsLocation != "" {
		g.Go(func() error {
			data, err := Fetch(ctx, cfg.Client, cfg.SystemsLocation)
			if err != nil {
				return fmt.Errorf("error loading pairing systems: %w", err)
			}
			site.Systems, err = ParseSystems(data)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return site, nil
}
