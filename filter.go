package main

import (
	"log"
	"net/url"
	"regexp"
	"time"
)

// articlePathPattern matches the dated permalink shape WordPress gives to
// posts: /YYYY/MM/ with an optional /DD/ segment.
var articlePathPattern = regexp.MustCompile(`/\d{4}/\d{2}(?:/\d{2})?/`)

// filterByDate keeps entries whose lastmod calendar date is on or after
// since. A nil since passes everything through. Undated entries are
// excluded unless includeUndated is set.
func filterByDate(entries []SitemapEntry, since *time.Time, includeUndated bool) []SitemapEntry {
	if since == nil {
		return entries
	}

	kept := make([]SitemapEntry, 0, len(entries))
	skippedByDate := 0
	skippedUndated := 0

	for _, entry := range entries {
		if entry.LastMod == nil {
			if includeUndated {
				kept = append(kept, entry)
			} else {
				skippedUndated++
			}
			continue
		}
		if !dateBefore(*entry.LastMod, *since) {
			kept = append(kept, entry)
		} else {
			skippedByDate++
		}
	}

	log.Printf("Date filter: kept=%d skipped(date)=%d skipped(no date)=%d", len(kept), skippedByDate, skippedUndated)
	return kept
}

// dateBefore compares calendar dates only, ignoring time of day and zone.
func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// filterByShape keeps addresses on the target domain whose path looks like
// a dated article, preserving first-seen order.
func filterByShape(entries []SitemapEntry, domain string) []string {
	kept := make([]string, 0, len(entries))
	skipped := 0

	for _, entry := range entries {
		parsed, err := url.Parse(entry.URL)
		if err != nil || parsed.Host != domain || !articlePathPattern.MatchString(parsed.Path) {
			skipped++
			continue
		}
		kept = append(kept, entry.URL)
	}

	log.Printf("Domain/pattern filter: kept=%d skipped=%d", len(kept), skipped)
	return kept
}
