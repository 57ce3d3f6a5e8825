package main

import (
	"fmt"
	"time"
)

// SitemapEntry is one page address from a URL sitemap. LastMod is nil when
// the sitemap carried no parseable lastmod for it.
type SitemapEntry struct {
	URL     string
	LastMod *time.Time
}

// ArticleRecord holds everything extracted from one article page. Date is a
// YYYY-MM-DD string or empty; an empty Markdown marks extraction as failed
// and the record as not persistable.
type ArticleRecord struct {
	URL      string
	Title    string
	Date     string
	Markdown string
}

// RunStats tracks the outcome of a pipeline run
type RunStats struct {
	Succeeded int
	Failed    int
	Total     int
}

// ConfigError reports invalid or missing input configuration. It is fatal
// and raised before any network I/O.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Reason
}

// ConnectivityError reports a failed pre-flight reachability check
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity check failed for %s: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// ParseError reports sitemap XML that could not be parsed at all, as
// opposed to a sitemap that parsed but contained no entries.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PersistenceError reports a failed directory creation or file write
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
