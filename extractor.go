package main

import (
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

const fallbackTitle = "Untitled Article"

// urlDatePattern pulls a publish date out of a dated permalink path.
var urlDatePattern = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)

// extractArticle derives title, publish date and Markdown body from one
// fetched article page. It never fails outright: a missing title falls back
// to a sentinel, a missing date stays empty, and only a missing or
// unconvertible entry-content container leaves Markdown empty, which marks
// the record as failed for the caller.
func extractArticle(html []byte, pageURL string) *ArticleRecord {
	record := &ArticleRecord{URL: pageURL, Title: fallbackTitle}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		log.Printf("Warning: unparseable HTML for %s: %v", pageURL, err)
		return record
	}

	title := strings.TrimSpace(doc.Find("h1.entry-title").First().Text())
	if title != "" {
		record.Title = strings.Join(strings.Fields(title), " ")
	} else {
		log.Printf("Warning: no title found for %s", pageURL)
	}

	record.Date = extractDate(doc, pageURL)

	content := doc.Find("div.entry-content").First()
	if content.Length() == 0 {
		log.Printf("Warning: no entry-content container for %s", pageURL)
		return record
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		log.Printf("Warning: rendering content of %s: %v", pageURL, err)
		return record
	}

	markdown, err := newConverter(pageURL).ConvertString(fragment)
	if err != nil {
		log.Printf("Warning: markdown conversion failed for %s: %v", pageURL, err)
		return record
	}

	record.Markdown = strings.TrimSpace(markdown) + "\n"
	return record
}

// extractDate prefers the machine-readable datetime attribute on the
// entry-date element and falls back to the YYYY/MM/DD permalink segments.
func extractDate(doc *goquery.Document, pageURL string) string {
	if attr, ok := doc.Find("time.entry-date").First().Attr("datetime"); ok {
		if t := parseLastMod(attr); t != nil {
			return t.Format("2006-01-02")
		}
		log.Printf("Warning: bad datetime attribute %q on %s", attr, pageURL)
	}

	if m := urlDatePattern.FindStringSubmatch(pageURL); m != nil {
		if _, err := time.Parse("2006-01-02", m[1]+"-"+m[2]+"-"+m[3]); err == nil {
			return m[1] + "-" + m[2] + "-" + m[3]
		}
	}

	log.Printf("Warning: no publish date found for %s", pageURL)
	return ""
}

// newConverter builds an HTML to Markdown converter for one page. The page
// host resolves relative links and images; the table plugin keeps tables as
// Markdown tables instead of flattening them.
func newConverter(pageURL string) *md.Converter {
	domain := ""
	if parsed, err := url.Parse(pageURL); err == nil {
		domain = parsed.Host
	}

	converter := md.NewConverter(domain, true, nil)
	converter.Use(plugin.Table())
	return converter
}
