// Package export renders tabular datasets as CSV or PDF for roster downloads.
package export

// Dataset defines tabular export content. Rows are keyed by header name so
// column order follows Headers.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
