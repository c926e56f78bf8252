package repository

import (
	"context"

	"github.com/youvit/gramedia-display-backend/internal/app/model"
	"github.com/youvit/gramedia-display-backend/internal/sheets"
)

// CatalogRepository reads and appends entity names on a single-column
// catalog sheet. Reads and appends are individually safe but a
// read-then-append sequence is not atomic: two concurrent adds of the same
// new name can both pass the existence check and produce a duplicate row.
// That race is a documented limitation of the append-only sheet model.
type CatalogRepository interface {
	EnsureStructure(ctx context.Context) error
	ListNames(ctx context.Context) ([]string, error)
	AppendName(ctx context.Context, name string) error
}

type catalogRepository struct {
	client  sheets.Client
	sheet   string
	headers []string
}

func NewStoreCatalogRepository(client sheets.Client, sheet string) CatalogRepository {
	return &catalogRepository{client: client, sheet: sheet, headers: model.StoreSheetHeaders}
}

func NewEmployeeCatalogRepository(client sheets.Client, sheet string) CatalogRepository {
	return &catalogRepository{client: client, sheet: sheet, headers: model.EmployeeSheetHeaders}
}

func (r *catalogRepository) EnsureStructure(ctx context.Context) error {
	return r.client.EnsureSheet(ctx, r.sheet, r.headers)
}

// ListNames returns the raw first-column values below the header row, in
// sheet order, empty cells skipped.
func (r *catalogRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.client.ReadAll(ctx, r.sheet)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		names = append(names, row[0])
	}
	return names, nil
}

func (r *catalogRepository) AppendName(ctx context.Context, name string) error {
	return r.client.AppendRow(ctx, r.sheet, []string{name})
}
