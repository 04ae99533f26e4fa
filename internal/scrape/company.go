// Package scrape fetches public company pages and reduces them to plain
// text suitable for retrieval. Scraping is strictly best-effort: every
// failure mode collapses to an empty corpus so downstream generation can
// fall back to profile-only context.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/autocareer/autocareer/pkg/logx"
)

const (
	// DefaultTimeout bounds a single page fetch
	DefaultTimeout = 10 * time.Second
	// MaxCorpusChars caps extracted text so one bloated page cannot blow
	// up embedding costs
	MaxCorpusChars = 5000

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// CompanyScraper fetches company pages with a shared rate limit across all
// pipeline runs
type CompanyScraper struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewCompanyScraper creates a scraper issuing at most rps requests per second
func NewCompanyScraper(rps float64) *CompanyScraper {
	if rps <= 0 {
		rps = 1
	}
	return &CompanyScraper{
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// FetchCorpus downloads the page at pageURL and returns its visible text,
// capped at MaxCorpusChars. Any failure returns an empty string.
func (s *CompanyScraper) FetchCorpus(ctx context.Context, pageURL string) string {
	if pageURL == "" {
		return ""
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		logx.Warnf("scrape: bad url %q: %v", pageURL, err)
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		logx.Warnf("scrape: fetch %q failed: %v", pageURL, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logx.Warnf("scrape: fetch %q returned %d", pageURL, resp.StatusCode)
		return ""
	}

	text, err := ExtractText(resp.Body)
	if err != nil {
		logx.Warnf("scrape: parse %q failed: %v", pageURL, err)
		return ""
	}
	return text
}

// ExtractText parses HTML and returns its visible text with scripts and
// styles stripped, whitespace normalized, and length capped
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, iframe").Remove()

	var b strings.Builder
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
		b.WriteByte(' ')
	})

	text := strings.Join(strings.Fields(b.String()), " ")
	if len(text) > MaxCorpusChars {
		cut := MaxCorpusChars
		// Back up to a rune boundary so the cap never splits a character
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, nil
}

// OriginOf returns the scheme://host root of rawURL, used to locate a
// company landing page from a posting URL
func OriginOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
