/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "time"

const (
	UserAgent      = "fuprechess-tdbot/0.4.0 (+https://github.com/ClarkeTj/fuprechess-tdbot)"
	WebCacheBucket = "fuprechess-tdbot-prod-webcache"
	SiteBaseURL    = "https://clarketj.github.io/fuprechess"

	ActiveDocName  = "active_tournaments.json"
	PastDocName    = "past_tournaments.json"
	SystemsDocName = "pairings.json"

	DocumentMaxAge = 5 * time.Minute
)

func DefaultActiveURL() string {
	return SiteBaseURL + "/" + ActiveDocName
}

func DefaultPastURL() string {
	return SiteBaseURL + "/" + PastDocName
}

func DefaultSystemsURL() string {
	return SiteBaseURL + "/" + SystemsDocName
}
