package repository

import (
	"context"

	"github.com/youvit/gramedia-display-backend/internal/app/model"
	"github.com/youvit/gramedia-display-backend/internal/sheets"
)

// RecordRepository appends finalized submissions to the main sheet.
// Append-only: ordering is the physical append order of the backing store,
// with no dedup and no transaction spanning the photo uploads.
type RecordRepository interface {
	EnsureStructure(ctx context.Context) error
	Append(ctx context.Context, record *model.SubmissionRecord) error
}

type recordRepository struct {
	client sheets.Client
	sheet  string
}

func NewRecordRepository(client sheets.Client, sheet string) RecordRepository {
	return &recordRepository{client: client, sheet: sheet}
}

func (r *recordRepository) EnsureStructure(ctx context.Context) error {
	return r.client.EnsureSheet(ctx, r.sheet, model.MainSheetHeaders)
}

func (r *recordRepository) Append(ctx context.Context, record *model.SubmissionRecord) error {
	return r.client.AppendRow(ctx, r.sheet, record.Row())
}
