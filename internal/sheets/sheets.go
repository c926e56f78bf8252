// Package sheets provides the tabular record store the repositories write
// to: an append-only set of named sheets with a header row each.
package sheets

import "context"

// Client is the tabular store consumed by the catalog and record
// repositories. Appends are ordered by physical append order; there is no
// dedup, upsert or cross-sheet transaction.
type Client interface {
	// ReadAll returns every row of the sheet, header row included.
	ReadAll(ctx context.Context, sheet string) ([][]string, error)

	// AppendRow appends values as the next physical row of the sheet.
	AppendRow(ctx context.Context, sheet string, values []string) error

	// EnsureSheet creates the sheet if missing and writes the header row
	// only when the sheet is empty. Existing data is never touched.
	EnsureSheet(ctx context.Context, sheet string, headers []string) error
}
