package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// baseHeaders imitate a desktop browser; sent on every request.
var baseHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
	"Accept-Language":           "en-US,en;q=0.9",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Session is the single outbound HTTP session for a run: one client, one
// User-Agent picked at random from the configured pool, one TLS mode.
type Session struct {
	client      *http.Client
	userAgent   string
	headTimeout time.Duration
}

// NewSession creates a session from settings. The rand source is injected
// so tests can pin the User-Agent choice.
func NewSession(settings *Settings, disableTLSVerify bool, rng *rand.Rand) *Session {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: disableTLSVerify},
	}

	userAgent := settings.UserAgents[rng.Intn(len(settings.UserAgents))]
	log.Printf("Session created with User-Agent: %s", userAgent)
	if disableTLSVerify {
		log.Printf("Warning: TLS certificate verification is DISABLED")
	}

	return &Session{
		client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(settings.RequestTimeoutSeconds) * time.Second,
		},
		userAgent:   userAgent,
		headTimeout: time.Duration(settings.HeadTimeoutSeconds) * time.Second,
	}
}

// Get fetches a URL and returns the response body. Any transport failure or
// non-200 status is returned as an error; nothing is retried.
func (s *Session) Get(url string) ([]byte, error) {
	if strings.HasPrefix(url, "data:") {
		return nil, fmt.Errorf("refusing to fetch data URL")
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	s.applyHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}

	return body, nil
}

// GetXML fetches a URL expected to hold XML, warning when the server labels
// it otherwise.
func (s *Session) GetXML(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	s.applyHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "xml") {
		log.Printf("Warning: expected XML from %s, got %s", url, contentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}

	return body, nil
}

// CheckConnectivity issues a HEAD request against the configured check URL.
// Failure means the run should not start.
func (s *Session) CheckConnectivity(url string) error {
	log.Printf("Checking connectivity to %s...", url)

	ctx, cancel := context.WithTimeout(context.Background(), s.headTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return &ConnectivityError{URL: url, Err: err}
	}
	s.applyHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return &ConnectivityError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &ConnectivityError{URL: url, Err: &HTTPError{StatusCode: resp.StatusCode, URL: url}}
	}

	log.Printf("Connectivity check successful (%d)", resp.StatusCode)
	return nil
}

func (s *Session) applyHeaders(req *http.Request) {
	for name, value := range baseHeaders {
		req.Header.Set(name, value)
	}
	req.Header.Set("User-Agent", s.userAgent)
}
