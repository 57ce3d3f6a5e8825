package main

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SitemapPlan is the result of resolving configuration into concrete
// sitemap candidates. Candidates are tried in order, first success wins.
type SitemapPlan struct {
	BaseURL    string
	Domain     string
	Candidates []string
	Explicit   bool
}

// ResolvePlan turns the --url / --sitemap-file inputs into a sitemap plan.
// It performs no network I/O, so every failure here is a ConfigError.
func ResolvePlan(siteURL, sitemapRef string, suffixes []string) (*SitemapPlan, error) {
	if siteURL == "" && sitemapRef == "" {
		return nil, &ConfigError{Reason: "either a site URL or a sitemap file must be provided"}
	}

	plan := &SitemapPlan{}

	if siteURL != "" {
		parsed, err := url.Parse(siteURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("invalid site URL %q", siteURL)}
		}
		plan.BaseURL = parsed.Scheme + "://" + parsed.Host
		plan.Domain = parsed.Host
	}

	if sitemapRef != "" {
		parsed, err := url.Parse(sitemapRef)
		if err == nil && parsed.Scheme != "" && parsed.Host != "" {
			// Absolute sitemap URL is the sole candidate; it can also
			// stand in for a missing site URL.
			plan.Candidates = []string{sitemapRef}
			plan.Explicit = true
			if plan.BaseURL == "" {
				plan.BaseURL = parsed.Scheme + "://" + parsed.Host
				plan.Domain = parsed.Host
			}
			return plan, nil
		}

		if plan.BaseURL == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("sitemap file %q is relative but no site URL was provided", sitemapRef)}
		}
		plan.Candidates = []string{joinPath(plan.BaseURL, sitemapRef)}
		plan.Explicit = true
		return plan, nil
	}

	if plan.Domain == "" {
		return nil, &ConfigError{Reason: "could not determine target domain"}
	}

	for _, suffix := range suffixes {
		plan.Candidates = append(plan.Candidates, joinPath(plan.BaseURL, suffix))
	}
	return plan, nil
}

func joinPath(base, ref string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

// Sitemap XML shapes. Element names carry no namespace so decoding matches
// by local name, which keeps parsing independent of the document's declared
// sitemap namespace (or lack of one).
type sitemapIndexXML struct {
	XMLName  xml.Name
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

type urlSetXML struct {
	XMLName xml.Name
	URLs    []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	} `xml:"url"`
}

// parseSitemapIndex returns child sitemap addresses in document order. An
// empty result means the document is not an index; callers use that to fall
// through to URL-set parsing.
func parseSitemapIndex(data []byte) []string {
	var doc sitemapIndexXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	var children []string
	for _, sm := range doc.Sitemaps {
		loc := strings.TrimSpace(sm.Loc)
		if loc != "" {
			children = append(children, loc)
		}
	}
	return children
}

// parseURLSet parses a leaf sitemap into entries. Unparseable XML (and a
// sitemap-index document) yields a ParseError; a valid URL set with no url
// elements yields an empty slice. A url element without a loc is skipped,
// and a bad lastmod degrades to a nil LastMod rather than failing.
func parseURLSet(data []byte) ([]SitemapEntry, error) {
	var doc urlSetXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Source: "url sitemap", Err: err}
	}
	if strings.EqualFold(doc.XMLName.Local, "sitemapindex") {
		return nil, &ParseError{Source: "url sitemap", Err: fmt.Errorf("document is a sitemap index")}
	}

	entries := make([]SitemapEntry, 0, len(doc.URLs))
	for _, u := range doc.URLs {
		loc := strings.TrimSpace(u.Loc)
		if loc == "" {
			continue
		}
		entries = append(entries, SitemapEntry{
			URL:     loc,
			LastMod: parseLastMod(u.LastMod),
		})
	}
	return entries, nil
}

// lastmodLayouts cover the formats seen in the wild: full RFC 3339, date
// with time but no zone, and bare dates.
var lastmodLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseLastMod(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range lastmodLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
