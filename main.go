package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	siteURL        string
	sitemapFile    string
	sinceDate      string
	disableTLS     bool
	includeUndated bool
	outputDir      string
	settingsPath   string
)

var rootCmd = &cobra.Command{
	Use:   "wordpress-to-markdown",
	Short: "Download WordPress articles as Markdown",
	Long: `Discovers article pages on a WordPress site via its sitemap(s),
filters them by publish date and URL shape, and saves each article
as a Markdown file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := LoadSettings(settingsPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		opts := RunOptions{
			SiteURL:        siteURL,
			SitemapRef:     sitemapFile,
			IncludeUndated: includeUndated,
			DisableTLS:     disableTLS,
			OutputDir:      outputDir,
		}

		if sinceDate != "" {
			since, err := time.Parse("2006-01-02", sinceDate)
			if err != nil {
				log.Fatalf("Invalid --since-date %q: must be YYYY-MM-DD", sinceDate)
			}
			opts.Since = &since
			log.Printf("Filtering articles since: %s", sinceDate)
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		pipeline := NewPipeline(settings, opts, rng)

		start := time.Now()
		stats, err := pipeline.Run()
		if err != nil {
			log.Fatalf("%v", err)
		}

		absOut, _ := filepath.Abs(pipeline.opts.OutputDir)
		log.Printf("Batch complete: success=%d fail=%d total=%d", stats.Succeeded, stats.Failed, stats.Total)
		log.Printf("Output: %s", absOut)
		log.Printf("Time: %.2fs", time.Since(start).Seconds())
	},
}

func init() {
	rootCmd.Flags().StringVar(&siteURL, "url", "", "Base URL of the target site (e.g., https://example.com)")
	rootCmd.Flags().StringVar(&sitemapFile, "sitemap-file", "", "Sitemap URL or path relative to --url")
	rootCmd.Flags().StringVar(&sinceDate, "since-date", "", "Only download articles on or after this date (YYYY-MM-DD)")
	rootCmd.Flags().BoolVar(&disableTLS, "disable-ssl", false, "Disable TLS certificate verification")
	rootCmd.Flags().BoolVar(&includeUndated, "include-undated", false, "Keep sitemap entries without a lastmod date when date filtering")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for Markdown output (overrides settings)")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to a settings YAML file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
