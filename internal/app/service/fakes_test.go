package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/youvit/gramedia-display-backend/internal/storage"
)

// fakeSheets is an in-memory sheets.Client for service tests.
type fakeSheets struct {
	mu        sync.Mutex
	sheets    map[string][][]string
	failSheet string // AppendRow to this sheet fails
	appendErr error
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{sheets: make(map[string][][]string)}
}

func (f *fakeSheets) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows, ok := f.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q does not exist", sheet)
	}
	out := make([][]string, len(rows))
	copy(out, rows)
	return out, nil
}

func (f *fakeSheets) AppendRow(ctx context.Context, sheet string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sheet == f.failSheet && f.appendErr != nil {
		return f.appendErr
	}
	if _, ok := f.sheets[sheet]; !ok {
		return fmt.Errorf("sheet %q does not exist", sheet)
	}
	f.sheets[sheet] = append(f.sheets[sheet], values)
	return nil
}

func (f *fakeSheets) EnsureSheet(ctx context.Context, sheet string, headers []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.sheets[sheet]; !ok {
		f.sheets[sheet] = [][]string{headers}
	}
	return nil
}

func (f *fakeSheets) rows(sheet string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sheets[sheet]
}

// fakeUploader records upload attempts and successes; failRole simulates
// the object store rejecting one photo role, privateRole a stored object
// that could not be made publicly readable.
type fakeUploader struct {
	mu          sync.Mutex
	attempts    []string
	uploaded    []string
	failRole    string
	privateRole string
}

func (u *fakeUploader) Upload(ctx context.Context, data []byte, store, employee, role string) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.attempts = append(u.attempts, role)
	if role == u.failRole {
		return nil, fmt.Errorf("bucket rejected write for %s", role)
	}
	u.uploaded = append(u.uploaded, role)
	return &storage.UploadResult{
		URL:    fmt.Sprintf("https://storage.example.com/%s/%s/%s.jpg", store, employee, role),
		Key:    fmt.Sprintf("%s/%s/%s.jpg", store, employee, role),
		Public: role != u.privateRole,
	}, nil
}
