package main

import (
	"fmt"
	"log"
)

// collectEntries locates a usable sitemap per the plan and gathers every
// article entry it reaches. Candidates are probed in order until one parses
// as either an index or a URL set; an index expands into its children, each
// fetched and parsed as a leaf. Individual leaf failures are logged and
// skipped. The run only fails here when no sitemap at all could be used or
// the sitemaps held no URLs.
func (p *Pipeline) collectEntries(plan *SitemapPlan) ([]SitemapEntry, error) {
	var leaves []string
	var collected []SitemapEntry
	located := false

	for _, candidate := range plan.Candidates {
		log.Printf("Attempting sitemap: %s", candidate)
		data, err := p.session.GetXML(candidate)
		p.delay()
		if err != nil {
			log.Printf("Warning: sitemap fetch failed: %v", err)
			continue
		}

		if children := parseSitemapIndex(data); len(children) > 0 {
			log.Printf("Index sitemap found with %d child sitemaps", len(children))
			leaves = children
			located = true
			break
		}

		entries, err := parseURLSet(data)
		if err != nil {
			log.Printf("Warning: sitemap found but unparseable: %v", err)
			continue
		}
		log.Printf("URL sitemap found with %d entries", len(entries))
		collected = entries
		located = true
		break
	}

	if !located {
		return nil, fmt.Errorf("no valid sitemap could be located and parsed")
	}

	for _, leaf := range leaves {
		log.Printf("Processing sitemap: %s", leaf)
		data, err := p.session.GetXML(leaf)
		p.delay()
		if err != nil {
			log.Printf("Warning: skipping sitemap %s: %v", leaf, err)
			continue
		}

		entries, err := parseURLSet(data)
		if err != nil {
			log.Printf("Warning: skipping unparseable sitemap %s: %v", leaf, err)
			continue
		}
		collected = append(collected, entries...)
	}

	unique := dedupeEntries(collected)
	if len(unique) == 0 {
		return nil, fmt.Errorf("no URLs found in sitemaps")
	}

	log.Printf("Collected %d unique URLs", len(unique))
	return unique, nil
}

// dedupeEntries drops repeated addresses, keeping the first occurrence and
// its lastmod value, in first-seen order.
func dedupeEntries(entries []SitemapEntry) []SitemapEntry {
	seen := make(map[string]bool, len(entries))
	unique := make([]SitemapEntry, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.URL] {
			continue
		}
		seen[entry.URL] = true
		unique = append(unique, entry)
	}
	return unique
}
