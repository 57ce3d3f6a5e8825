package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const fallbackStem = "unnamed-article"

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	hyphenRunPattern  = regexp.MustCompile(`-+`)
	datePattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// cleanFilename derives a filesystem-safe Markdown filename from a title
// and an optional YYYY-MM-DD date. Long stems are cut at a hyphen boundary
// so words survive intact.
func cleanFilename(title, date string, maxStem int) string {
	stem := nonWordPattern.ReplaceAllString(title, "")
	stem = whitespacePattern.ReplaceAllString(stem, "-")
	stem = hyphenRunPattern.ReplaceAllString(stem, "-")
	stem = strings.ToLower(strings.Trim(stem, "-"))

	if maxStem > 0 && len(stem) > maxStem {
		cut := stem[:maxStem]
		if i := strings.LastIndex(cut, "-"); i > 0 {
			cut = cut[:i]
		}
		stem = strings.Trim(cut, "-")
	}

	if stem == "" {
		stem = fallbackStem
	}

	if datePattern.MatchString(date) {
		return date + "-" + stem + ".md"
	}
	if date != "" {
		log.Printf("Warning: date %q is not YYYY-MM-DD, omitting from filename", date)
	}
	return stem + ".md"
}

// saveMarkdown writes the record as one Markdown document: a date line, a
// source line, the title heading and the converted body.
func saveMarkdown(record *ArticleRecord, outputDir, filename string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return &PersistenceError{Path: outputDir, Err: err}
	}

	date := record.Date
	if date == "" {
		date = "N/A"
	}

	var doc strings.Builder
	fmt.Fprintf(&doc, "**Date:** %s\n\n", date)
	fmt.Fprintf(&doc, "**Source URL:** <%s>\n\n", record.URL)
	fmt.Fprintf(&doc, "# %s\n\n", record.Title)
	doc.WriteString(record.Markdown)

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, []byte(doc.String()), 0644); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	log.Printf("Saved: %s", path)
	return nil
}
