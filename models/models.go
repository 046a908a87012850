// Package models defines data structures shared by the checker.
package models

import "time"

// ExpectedRecord is one row of the input sheet: a reference URL and the
// title and h1 the mirror is expected to render for it.
type ExpectedRecord struct {
	Row   int    `json:"row"`
	URL   string `json:"url"`
	Title string `json:"title"`
	H1    string `json:"h1"`
}

// PageData is the result of fetching one mirror page. Either Err is set or
// the extracted fields are, never both.
type PageData struct {
	Title string
	H1    string
	Err   error
}

// Failed reports whether the fetch produced an error instead of fields.
func (p PageData) Failed() bool {
	return p.Err != nil
}

// ErrorMessage returns the report text for a failed fetch.
func (p PageData) ErrorMessage() string {
	if p.Err == nil {
		return ""
	}
	return p.Err.Error()
}

// FieldDiff holds the expected and actual value of a mismatching field.
type FieldDiff struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Discrepancy is one report row. A nil FieldDiff means the field matched.
type Discrepancy struct {
	URL   string     `json:"url"`
	Error string     `json:"error,omitempty"`
	Title *FieldDiff `json:"title,omitempty"`
	H1    *FieldDiff `json:"h1,omitempty"`
}

// RunResult holds the overall statistics of a comparison run.
type RunResult struct {
	StartTime    time.Time
	EndTime      time.Time
	TotalRecords int
	Fetched      int
	Skipped      int
	Matched      int
	Mismatched   int
	Failed       int
	CacheHits    int
	ErrorsByType map[string]int
}
