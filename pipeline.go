package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// RunOptions is the per-run configuration resolved from the command line.
type RunOptions struct {
	SiteURL        string
	SitemapRef     string
	Since          *time.Time
	IncludeUndated bool
	DisableTLS     bool
	OutputDir      string
}

// Pipeline drives the whole discovery-filter-extract sequence for one run.
// It owns the worklist and the session; nothing survives across runs.
type Pipeline struct {
	settings *Settings
	opts     RunOptions
	session  *Session
	delay    func()
}

// NewPipeline wires a pipeline from settings and options. The rand source
// feeds both the User-Agent choice and the politeness delay; tests pass a
// seeded source and swap delay for a no-op.
func NewPipeline(settings *Settings, opts RunOptions, rng *rand.Rand) *Pipeline {
	if opts.OutputDir == "" {
		opts.OutputDir = settings.OutputDirectory
	}

	p := &Pipeline{
		settings: settings,
		opts:     opts,
		session:  NewSession(settings, opts.DisableTLS, rng),
	}
	p.delay = func() {
		seconds := settings.MinDelaySeconds + rng.Float64()*(settings.MaxDelaySeconds-settings.MinDelaySeconds)
		log.Printf("Waiting %.2fs...", seconds)
		time.Sleep(time.Duration(seconds * float64(time.Second)))
	}
	return p
}

// Run executes the pipeline. Per-article failures are tallied and skipped;
// the run itself only fails on configuration problems, a failed
// connectivity check, or an empty worklist.
func (p *Pipeline) Run() (*RunStats, error) {
	plan, err := ResolvePlan(p.opts.SiteURL, p.opts.SitemapRef, p.settings.SitemapSuffixes)
	if err != nil {
		return nil, err
	}

	log.Printf("Target domain: %s", plan.Domain)
	if plan.Explicit {
		log.Printf("Sitemap URL: %s", plan.Candidates[0])
	} else {
		log.Printf("Auto-discovering sitemap from: %s", plan.BaseURL)
	}

	if err := p.session.CheckConnectivity(p.settings.ConnectivityCheckURL); err != nil {
		return nil, err
	}

	entries, err := p.collectEntries(plan)
	if err != nil {
		return nil, err
	}

	entries = filterByDate(entries, p.opts.Since, p.opts.IncludeUndated)
	worklist := filterByShape(entries, plan.Domain)
	if len(worklist) == 0 {
		return nil, fmt.Errorf("no URLs matched all criteria")
	}

	stats := &RunStats{Total: len(worklist)}
	log.Printf("Processing %d articles...", len(worklist))

	for i, articleURL := range worklist {
		log.Printf("[%d/%d] Processing: %s", i+1, len(worklist), articleURL)

		html, err := p.session.Get(articleURL)
		if err != nil {
			log.Printf("Failed %s: %v", articleURL, err)
			stats.Failed++
			p.delay()
			continue
		}

		record := extractArticle(html, articleURL)
		if record.Markdown == "" {
			log.Printf("Failed %s: no convertible content", articleURL)
			stats.Failed++
			p.delay()
			continue
		}

		filename := cleanFilename(record.Title, record.Date, p.settings.MaxFilenameLength)
		if err := saveMarkdown(record, p.opts.OutputDir, filename); err != nil {
			log.Printf("Failed %s: %v", articleURL, err)
			stats.Failed++
		} else {
			stats.Succeeded++
		}
		p.delay()
	}

	return stats, nil
}
