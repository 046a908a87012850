// Package compare diffs expected page fields against a mirror site.
package compare

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aluiziolira/titlecheck/models"
)

// Fetcher retrieves one page and extracts its compared fields.
type Fetcher interface {
	Fetch(url string) models.PageData
}

// Recorder receives per-record counters. *scraper.Metrics satisfies it.
type Recorder interface {
	IncDiscrepancy(kind string)
	IncSkipped()
}

// ErrorClassifier maps a fetch error to a short label for the run summary.
type ErrorClassifier func(error) string

// Comparator walks expected records in order and collects discrepancies.
type Comparator struct {
	Fetcher  Fetcher
	Recorder Recorder
	Classify ErrorClassifier
	Logger   *slog.Logger

	stats models.RunResult
}

// New returns a Comparator that fetches pages with f.
func New(f Fetcher) *Comparator {
	return &Comparator{Fetcher: f}
}

// Compare checks every expected record against mirrorBaseURL and returns the
// discrepancies in input order. Records whose path falls into an already
// checked group are skipped without fetching. Fetch failures are reported per
// record; a row outside the base URL aborts the run.
func (c *Comparator) Compare(ctx context.Context, expected []models.ExpectedRecord, mirrorBaseURL string, groupPaths []string) ([]models.Discrepancy, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(expected) == 0 {
		return nil, ErrNoRecords
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c.stats = models.RunResult{
		StartTime:    time.Now(),
		TotalRecords: len(expected),
		ErrorsByType: make(map[string]int),
	}
	defer func() {
		c.stats.EndTime = time.Now()
	}()

	baseURL := strings.TrimRight(expected[0].URL, "/")
	var groups *groupTracker
	if len(groupPaths) > 0 {
		groups = newGroupTracker(groupPaths)
	}

	var results []models.Discrepancy
	for _, record := range expected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		relPath, err := relativePath(baseURL, record)
		if err != nil {
			return nil, err
		}

		if groups != nil {
			if group, skip := groups.skip(relPath); skip {
				c.stats.Skipped++
				if c.Recorder != nil {
					c.Recorder.IncSkipped()
				}
				logger.Debug("skipping grouped path", slog.String("path", relPath), slog.String("group", group))
				continue
			}
		}

		logger.Info("checking", slog.String("path", relPath))
		page := c.Fetcher.Fetch(mirrorBaseURL + relPath)
		c.stats.Fetched++

		d, ok := diff(relPath, record, page)
		if !ok {
			c.stats.Matched++
			continue
		}

		kind := "mismatch"
		if page.Failed() {
			kind = "error"
			c.stats.Failed++
			label := "unknown"
			if c.Classify != nil {
				label = c.Classify(page.Err)
			}
			c.stats.ErrorsByType[label]++
		} else {
			c.stats.Mismatched++
		}
		if c.Recorder != nil {
			c.Recorder.IncDiscrepancy(kind)
		}
		results = append(results, d)
	}

	return results, nil
}

// Stats returns the statistics of the most recent Compare call.
func (c *Comparator) Stats() models.RunResult {
	out := c.stats
	out.ErrorsByType = make(map[string]int, len(c.stats.ErrorsByType))
	for k, v := range c.stats.ErrorsByType {
		out.ErrorsByType[k] = v
	}
	return out
}

// relativePath strips baseURL from the record URL. The remainder must start
// with "/".
func relativePath(baseURL string, record models.ExpectedRecord) (string, error) {
	rest, ok := strings.CutPrefix(record.URL, baseURL)
	if !ok || !strings.HasPrefix(rest, "/") {
		return "", &PathMismatchError{Row: record.Row, URL: record.URL, BaseURL: baseURL}
	}
	return rest, nil
}

// diff builds the report row for one record. It returns false when the page
// matched on both fields.
func diff(relPath string, record models.ExpectedRecord, page models.PageData) (models.Discrepancy, bool) {
	d := models.Discrepancy{URL: relPath}

	if page.Failed() {
		d.Error = page.ErrorMessage()
		return d, true
	}

	if record.Title != page.Title {
		d.Title = &models.FieldDiff{Expected: record.Title, Actual: page.Title}
	}
	if record.H1 != page.H1 {
		d.H1 = &models.FieldDiff{Expected: record.H1, Actual: page.H1}
	}

	return d, d.Title != nil || d.H1 != nil
}
