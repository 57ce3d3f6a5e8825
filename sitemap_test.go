package main

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestResolvePlan(t *testing.T) {
	suffixes := []string{"/sitemap_index.xml", "/sitemap.xml"}

	tests := []struct {
		name           string
		siteURL        string
		sitemapRef     string
		wantDomain     string
		wantCandidates []string
		wantErr        bool
	}{
		{
			name:       "auto discovery from site URL",
			siteURL:    "https://example.com/some/page",
			wantDomain: "example.com",
			wantCandidates: []string{
				"https://example.com/sitemap_index.xml",
				"https://example.com/sitemap.xml",
			},
		},
		{
			name:           "explicit absolute sitemap",
			sitemapRef:     "https://example.com/custom-sitemap.xml",
			wantDomain:     "example.com",
			wantCandidates: []string{"https://example.com/custom-sitemap.xml"},
		},
		{
			name:           "relative sitemap joined to base",
			siteURL:        "https://example.com",
			sitemapRef:     "news-sitemap.xml",
			wantDomain:     "example.com",
			wantCandidates: []string{"https://example.com/news-sitemap.xml"},
		},
		{
			name:           "absolute sitemap keeps explicit site domain",
			siteURL:        "https://example.com",
			sitemapRef:     "https://cdn.example.net/sitemap.xml",
			wantDomain:     "example.com",
			wantCandidates: []string{"https://cdn.example.net/sitemap.xml"},
		},
		{name: "relative sitemap without base", sitemapRef: "sitemap.xml", wantErr: true},
		{name: "no inputs", wantErr: true},
		{name: "invalid site URL", siteURL: "not a url", wantErr: true},
		{name: "site URL without scheme", siteURL: "example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ResolvePlan(tt.siteURL, tt.sitemapRef, suffixes)
			if tt.wantErr {
				var configErr *ConfigError
				if !errors.As(err, &configErr) {
					t.Fatalf("ResolvePlan() error = %v, want ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePlan() unexpected error: %v", err)
			}
			if plan.Domain != tt.wantDomain {
				t.Errorf("Domain = %q, want %q", plan.Domain, tt.wantDomain)
			}
			if !reflect.DeepEqual(plan.Candidates, tt.wantCandidates) {
				t.Errorf("Candidates = %v, want %v", plan.Candidates, tt.wantCandidates)
			}
		})
	}
}

func TestParseSitemapIndex(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want []string
	}{
		{
			name: "namespaced index in document order",
			xml: `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/post-sitemap.xml</loc></sitemap>
  <sitemap><loc>https://example.com/page-sitemap.xml</loc></sitemap>
</sitemapindex>`,
			want: []string{
				"https://example.com/post-sitemap.xml",
				"https://example.com/page-sitemap.xml",
			},
		},
		{
			name: "index without namespace",
			xml:  `<sitemapindex><sitemap><loc> https://example.com/a.xml </loc></sitemap></sitemapindex>`,
			want: []string{"https://example.com/a.xml"},
		},
		{
			name: "url set is not an index",
			xml: `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/2024/01/01/post/</loc></url>
</urlset>`,
			want: nil,
		},
		{name: "garbage", xml: "<<<not xml", want: nil},
		{name: "sitemap without loc skipped", xml: `<sitemapindex><sitemap></sitemap></sitemapindex>`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSitemapIndex([]byte(tt.xml))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSitemapIndex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseURLSet(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/2024/01/05/first/</loc><lastmod>2024-01-05T10:00:00+00:00</lastmod></url>
  <url><loc>https://example.com/2024/01/06/second/</loc><lastmod>not-a-date</lastmod></url>
  <url><lastmod>2024-01-07</lastmod></url>
  <url><loc>https://example.com/2024/01/08/fourth/</loc></url>
</urlset>`

	entries, err := parseURLSet([]byte(xml))
	if err != nil {
		t.Fatalf("parseURLSet() unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("parseURLSet() returned %d entries, want 3", len(entries))
	}

	if entries[0].URL != "https://example.com/2024/01/05/first/" {
		t.Errorf("entries[0].URL = %q", entries[0].URL)
	}
	if entries[0].LastMod == nil || entries[0].LastMod.Format("2006-01-02") != "2024-01-05" {
		t.Errorf("entries[0].LastMod = %v, want 2024-01-05", entries[0].LastMod)
	}
	if entries[1].LastMod != nil {
		t.Errorf("unparseable lastmod should yield nil LastMod, got %v", entries[1].LastMod)
	}
	if entries[2].LastMod != nil {
		t.Errorf("missing lastmod should yield nil LastMod, got %v", entries[2].LastMod)
	}
}

func TestParseURLSetEmpty(t *testing.T) {
	entries, err := parseURLSet([]byte(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></urlset>`))
	if err != nil {
		t.Fatalf("parseURLSet() on empty url set should not fail: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("parseURLSet() = %v, want no entries", entries)
	}
}

func TestParseURLSetFailures(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"garbage", "<<<not xml"},
		{"plain text", "this is not xml"},
		{"index document", `<sitemapindex><sitemap><loc>https://example.com/a.xml</loc></sitemap></sitemapindex>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseURLSet([]byte(tt.xml))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("parseURLSet() error = %v, want ParseError", err)
			}
		})
	}
}

func TestParseLastMod(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string // empty means nil expected
	}{
		{"rfc3339 with offset", "2024-03-10T08:30:00+02:00", "2024-03-10"},
		{"rfc3339 zulu", "2024-03-10T08:30:00Z", "2024-03-10"},
		{"date time without zone", "2024-03-10T08:30:00", "2024-03-10"},
		{"bare date", "2024-03-10", "2024-03-10"},
		{"whitespace", "  2024-03-10  ", "2024-03-10"},
		{"empty", "", ""},
		{"nonsense", "last tuesday", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLastMod(tt.value)
			if tt.want == "" {
				if got != nil {
					t.Errorf("parseLastMod(%q) = %v, want nil", tt.value, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("parseLastMod(%q) = nil, want %s", tt.value, tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("parseLastMod(%q) = %s, want %s", tt.value, got.Format(time.RFC3339), tt.want)
			}
		})
	}
}
