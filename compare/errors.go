package compare

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned when the expected table has no rows, so no base
// URL can be derived.
var ErrNoRecords = errors.New("compare: no expected records")

// PathMismatchError reports a row whose URL does not live under the base URL
// taken from the first row.
type PathMismatchError struct {
	Row     int
	URL     string
	BaseURL string
}

func (e *PathMismatchError) Error() string {
	return fmt.Sprintf("compare: row %d: url %q is not under base %q", e.Row, e.URL, e.BaseURL)
}
