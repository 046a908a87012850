package scraper

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/aluiziolira/titlecheck/config"
	"github.com/aluiziolira/titlecheck/models"
	"github.com/aluiziolira/titlecheck/parser"
	"github.com/gocolly/colly/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	ctxBody   = "body"
	ctxStatus = "status"
)

// Fetcher retrieves mirror pages one at a time and extracts the compared
// fields. It never returns an error; failures are folded into PageData.
type Fetcher struct {
	cfg       *config.Config
	collector *colly.Collector
	cache     *lru.Cache[string, models.PageData]
	cacheHits int
	Metrics   *Metrics
}

// NewFetcher builds a synchronous fetcher configured from cfg.
func NewFetcher(cfg *config.Config, metrics *Metrics) (*Fetcher, error) {
	// Every status reaches OnResponse; fetch decides what counts as a
	// failure. A zero MaxBodySize keeps colly from truncating large pages.
	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.MaxBodySize(0),
	)

	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	collector.OnResponse(func(r *colly.Response) {
		r.Ctx.Put(ctxBody, r.Body)
		r.Ctx.Put(ctxStatus, r.StatusCode)
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.Ctx != nil {
			r.Ctx.Put(ctxStatus, r.StatusCode)
		}
	})

	f := &Fetcher{
		cfg:       cfg,
		collector: collector,
		Metrics:   metrics,
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, models.PageData](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create page cache: %w", err)
		}
		f.cache = cache
	}

	return f, nil
}

// WithTransport replaces the HTTP transport used for fetching.
func (f *Fetcher) WithTransport(rt http.RoundTripper) {
	f.collector.WithTransport(rt)
}

// CacheHits returns how many fetches were answered from the page cache.
func (f *Fetcher) CacheHits() int {
	return f.cacheHits
}

// Fetch retrieves pageURL and extracts its title and first heading.
func (f *Fetcher) Fetch(pageURL string) models.PageData {
	if f.cache != nil {
		if page, ok := f.cache.Get(pageURL); ok {
			f.cacheHits++
			f.Metrics.IncCacheHit()
			slog.Debug("page cache hit", slog.String("url", pageURL))
			return page
		}
	}

	start := time.Now()
	page := f.fetch(pageURL)
	f.Metrics.ObserveDuration(time.Since(start))

	if page.Failed() {
		f.Metrics.IncFetch(ErrorType(page.Err))
		slog.Debug("fetch failed",
			slog.String("url", pageURL),
			slog.String("category", ErrorType(page.Err)),
			slog.Any("error", errors.Unwrap(page.Err)),
		)
	} else {
		f.Metrics.IncFetch("ok")
	}

	if f.cache != nil {
		f.cache.Add(pageURL, page)
	}
	return page
}

func (f *Fetcher) fetch(pageURL string) (page models.PageData) {
	defer func() {
		if r := recover(); r != nil {
			page = models.PageData{Err: ErrUnknown{Err: fmt.Errorf("panic: %v", r)}}
		}
	}()

	ctx := colly.NewContext()
	err := f.collector.Request(http.MethodGet, pageURL, nil, ctx, nil)

	statusCode, _ := ctx.GetAny(ctxStatus).(int)
	if err != nil {
		return models.PageData{Err: classifyError(err, statusCode)}
	}
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return models.PageData{Err: ErrHTTPStatus{
			StatusCode: statusCode,
			Err:        errors.New(http.StatusText(statusCode)),
		}}
	}

	body, _ := ctx.GetAny(ctxBody).([]byte)
	if !utf8.Valid(body) {
		return models.PageData{Err: ErrUnknown{Err: errInvalidUTF8}}
	}

	fields := parser.ExtractPage(string(body))
	return models.PageData{Title: fields.Title, H1: fields.H1}
}

func classifyError(err error, statusCode int) error {
	if statusCode != 0 {
		return ErrHTTPStatus{StatusCode: statusCode, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Op != "parse" {
		return ErrNetwork{Reason: urlErr.Err.Error(), Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrNetwork{Reason: opErr.Error(), Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrNetwork{Reason: dnsErr.Error(), Err: err}
	}

	return ErrUnknown{Err: err}
}
