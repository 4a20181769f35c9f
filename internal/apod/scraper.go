package apod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"skyguide/internal/domain"
)

// ErrNoMedia is returned when an APOD page carries neither an image nor a video.
var ErrNoMedia = errors.New("no media found")

// ErrScrape marks a page that could not be parsed.
var ErrScrape = errors.New("scrape failed")

var (
	pageDatePattern = regexp.MustCompile(`ap(\d{2})(\d{2})(\d{2})\.html`)
	creditPattern   = regexp.MustCompile(`(?im)(?:copyright|credit)\s*:\s*(.+)$`)
)

// ScraperConfig configures the HTML scraper.
type ScraperConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logrus.Logger
	Now        func() time.Time
}

// Scraper reads APOD records straight from the published HTML pages. The markup is
// not a stable interface, so every rule here is a best-effort heuristic.
type Scraper struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
	now     func() time.Time
}

func NewScraper(cfg ScraperConfig) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://apod.nasa.gov"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Scraper{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		log:     cfg.Logger,
		now:     cfg.Now,
	}
}

func (s *Scraper) Fetch(ctx context.Context, date string) (*domain.APOD, error) {
	pageURL := s.baseURL + "/apod/astropix.html"
	if date != "" {
		day, err := time.Parse(DateLayout, date)
		if err != nil {
			return nil, domain.NewValidationError("date", "must be formatted as YYYY-MM-DD")
		}
		pageURL = s.pageURL(day)
	}

	record, err := s.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if record.Date == "" {
		if date != "" {
			record.Date = date
		} else {
			record.Date = s.now().Format(DateLayout)
		}
	}
	return record, nil
}

// FetchRange scrapes each day of the inclusive range in order. Days that fail are
// logged and left out of the result.
func (s *Scraper) FetchRange(ctx context.Context, start, end string) ([]domain.APOD, error) {
	from, to, err := parseRange(start, end, MaxScrapeRangeDays)
	if err != nil {
		return nil, err
	}

	var records []domain.APOD
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		date := day.Format(DateLayout)
		record, err := s.Fetch(ctx, date)
		if err != nil {
			s.log.WithError(err).WithField("date", date).Warn("skipping apod day")
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

func (s *Scraper) pageURL(day time.Time) string {
	return fmt.Sprintf("%s/apod/ap%s.html", s.baseURL, day.Format("060102"))
}

func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (*domain.APOD, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create apod page request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return nil, &domain.UpstreamError{
				Service:    serviceName,
				Kind:       domain.UpstreamNotFound,
				StatusCode: resp.StatusCode,
				Message:    "No APOD data found for the specified date. Please try a different date.",
			}
		}
		return nil, statusError(resp.StatusCode, nil)
	}

	return parsePage(resp.Body, pageURL)
}

// parsePage extracts an APOD record from a page body. Panics raised while walking
// unexpected markup are reported as ErrScrape.
func parsePage(r io.Reader, pageURL string) (record *domain.APOD, err error) {
	defer func() {
		if p := recover(); p != nil {
			record = nil
			err = fmt.Errorf("%w: %v", ErrScrape, p)
		}
	}()

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: page url: %v", ErrScrape, err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScrape, err)
	}

	record = &domain.APOD{
		Date:           dateFromPageURL(pageURL),
		Title:          pageTitle(doc),
		ServiceVersion: serviceVersion,
	}

	media := doc.Find("img").First()
	if media.Length() > 0 {
		src, _ := media.Attr("src")
		record.MediaType = "image"
		record.URL = resolveRef(base, src)
		if link := media.Closest("a"); link.Length() > 0 {
			if href, ok := link.Attr("href"); ok {
				record.HDURL = resolveRef(base, href)
			}
		}
	} else {
		media = doc.Find("iframe, video, embed").First()
		if media.Length() == 0 {
			return nil, ErrNoMedia
		}
		src, ok := media.Attr("src")
		if !ok {
			src, _ = media.Find("source").First().Attr("src")
		}
		record.MediaType = "video"
		record.URL = resolveRef(base, src)
	}
	if record.URL == "" {
		return nil, ErrNoMedia
	}

	paragraphs := paragraphsAfter(doc, media.Get(0))
	record.Explanation = explanation(paragraphs)
	record.Copyright = credit(strings.Join(paragraphs, "\n"))
	if record.Copyright == "" {
		record.Copyright = credit(strings.Join(doc.Find("center").Map(func(_ int, sel *goquery.Selection) string {
			return sel.Text()
		}), "\n"))
	}

	return record, nil
}

// dateFromPageURL turns ap240105.html into 2024-01-05. APOD started in 1995,
// so two-digit years below 95 belong to the 2000s.
func dateFromPageURL(pageURL string) string {
	m := pageDatePattern.FindStringSubmatch(pageURL)
	if m == nil {
		return ""
	}
	century := "20"
	if m[1] >= "95" {
		century = "19"
	}
	return fmt.Sprintf("%s%s-%s-%s", century, m[1], m[2], m[3])
}

func pageTitle(doc *goquery.Document) string {
	title := collapse(doc.Find("title").First().Text())
	title = strings.TrimSpace(strings.TrimPrefix(title, "APOD:"))
	if head, rest, ok := strings.Cut(title, " - "); ok && isPageDate(head) {
		title = strings.TrimSpace(rest)
	}
	if title == "" {
		title = collapse(doc.Find("center b").First().Text())
	}
	return title
}

// isPageDate reports whether s is a date as printed on APOD pages, e.g. "2024 January 5".
func isPageDate(s string) bool {
	_, err := time.Parse("2006 January 2", strings.TrimSpace(s))
	return err == nil
}

// paragraphsAfter returns the raw text of every <p> that starts after the media node.
func paragraphsAfter(doc *goquery.Document, media *html.Node) []string {
	var (
		seen  bool
		texts []string
	)
	doc.Find("img, iframe, video, embed, p").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node == media {
			seen = true
			return
		}
		if !seen || goquery.NodeName(sel) != "p" {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

func explanation(paragraphs []string) string {
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if text := collapse(p); text != "" {
			parts = append(parts, text)
		}
	}
	text := strings.Join(parts, " ")
	return strings.TrimSpace(strings.TrimPrefix(text, "Explanation:"))
}

func credit(text string) string {
	m := creditPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return collapse(m[1])
}

func resolveRef(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ Fetcher = (*Scraper)(nil)
