// Package imagesearch finds a representative picture for a free-text object name,
// trying the NASA image library first and Wikipedia page thumbnails second.
package imagesearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"skyguide/internal/domain"
)

const (
	DefaultRetryBase   = time.Second
	DefaultMaxAttempts = 3
	DefaultTimeout     = 10 * time.Second

	userAgent = "skyguide/1.0"
)

// Config configures a Resolver. Zero values fall back to the public endpoints and defaults.
type Config struct {
	NASABaseURL      string
	WikipediaBaseURL string
	Timeout          time.Duration
	RetryBase        time.Duration
	MaxAttempts      int
	HTTPClient       *http.Client
	Logger           *logrus.Logger
}

type Resolver struct {
	nasaBaseURL string
	wikiBaseURL string
	retryBase   time.Duration
	maxAttempts int
	http        *http.Client
	log         *logrus.Logger
}

func New(cfg Config) *Resolver {
	if cfg.NASABaseURL == "" {
		cfg.NASABaseURL = "https://images-api.nasa.gov"
	}
	if cfg.WikipediaBaseURL == "" {
		cfg.WikipediaBaseURL = "https://en.wikipedia.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = DefaultRetryBase
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Resolver{
		nasaBaseURL: strings.TrimSuffix(cfg.NASABaseURL, "/"),
		wikiBaseURL: strings.TrimSuffix(cfg.WikipediaBaseURL, "/"),
		retryBase:   cfg.RetryBase,
		maxAttempts: cfg.MaxAttempts,
		http:        cfg.HTTPClient,
		log:         cfg.Logger,
	}
}

// Resolve never fails with an error: an unresolved name yields Success=false and a
// message in Error.
func (r *Resolver) Resolve(ctx context.Context, name string) (result domain.ImageResult) {
	name = strings.TrimSpace(name)
	log := r.log.WithField("object", name)

	defer func() {
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("image lookup panicked")
			result = notFound(name)
		}
	}()

	if res, ok := r.fromNASA(ctx, name); ok {
		return res
	}
	if res, ok := r.fromWikipedia(ctx, name); ok {
		return res
	}

	log.Info("no image found")
	return notFound(name)
}

func (r *Resolver) fromNASA(ctx context.Context, name string) (domain.ImageResult, bool) {
	var item *nasaItemData
	err := withRetry(ctx, r.log, "nasa search", r.maxAttempts, r.retryBase, func(ctx context.Context) error {
		var err error
		item, err = r.searchNASA(ctx, name)
		return err
	})
	if err != nil {
		r.log.WithError(err).WithField("object", name).Warn("nasa image search failed")
		return domain.ImageResult{}, false
	}
	if item == nil {
		return domain.ImageResult{}, false
	}

	var hrefs []string
	err = withRetry(ctx, r.log, "nasa asset", r.maxAttempts, r.retryBase, func(ctx context.Context) error {
		var err error
		hrefs, err = r.assetHrefs(ctx, item.NASAID)
		return err
	})
	if err != nil {
		r.log.WithError(err).WithField("nasa_id", item.NASAID).Warn("nasa asset lookup failed")
		return domain.ImageResult{}, false
	}

	href, ok := selectImage(hrefs)
	if !ok {
		return domain.ImageResult{}, false
	}
	return domain.ImageResult{
		Success:    true,
		ObjectName: name,
		ImageURL:   href,
		Source:     domain.ImageSourceNASA,
		Metadata: domain.ImageMetadata{
			Title:       item.Title,
			Description: item.Description,
			DateCreated: item.DateCreated,
			Center:      item.Center,
			AssetID:     item.NASAID,
		},
	}, true
}

func (r *Resolver) fromWikipedia(ctx context.Context, name string) (domain.ImageResult, bool) {
	source, title, err := r.wikipediaThumbnail(ctx, name)
	if err != nil {
		r.log.WithError(err).WithField("object", name).Warn("wikipedia lookup failed")
		return domain.ImageResult{}, false
	}
	if source == "" {
		return domain.ImageResult{}, false
	}
	return domain.ImageResult{
		Success:    true,
		ObjectName: name,
		ImageURL:   source,
		Source:     domain.ImageSourceWikipedia,
		Metadata:   domain.ImageMetadata{Title: title},
	}, true
}

func notFound(name string) domain.ImageResult {
	return domain.ImageResult{
		ObjectName: name,
		Source:     domain.ImageSourceNone,
		Error:      fmt.Sprintf("no image found for %s", name),
	}
}
