package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youvit/gramedia-display-backend/internal/app/repository"
)

const (
	testStoreSheet    = "Store Sheet"
	testEmployeeSheet = "Employee Sheet"
)

func setupCatalogServiceTest(t *testing.T) (CatalogService, *fakeSheets) {
	client := newFakeSheets()
	ctx := context.Background()

	storeRepo := repository.NewStoreCatalogRepository(client, testStoreSheet)
	employeeRepo := repository.NewEmployeeCatalogRepository(client, testEmployeeSheet)
	require.NoError(t, storeRepo.EnsureStructure(ctx))
	require.NoError(t, employeeRepo.EnsureStructure(ctx))

	return NewCatalogService(storeRepo, employeeRepo, nil), client
}

func TestCatalogService_ListStores_SortedDeduplicated(t *testing.T) {
	svc, client := setupCatalogServiceTest(t)
	ctx := context.Background()

	client.AppendRow(ctx, testStoreSheet, []string{"Zebra Mall"})
	client.AppendRow(ctx, testStoreSheet, []string{"  Main Store "})
	client.AppendRow(ctx, testStoreSheet, []string{"Main Store"})
	client.AppendRow(ctx, testStoreSheet, []string{""})
	client.AppendRow(ctx, testStoreSheet, []string{"Airport Branch"})

	stores, err := svc.ListStores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Airport Branch", "Main Store", "Zebra Mall"}, stores)
}

func TestCatalogService_AddStore_Idempotent(t *testing.T) {
	svc, client := setupCatalogServiceTest(t)
	ctx := context.Background()

	require.NoError(t, svc.AddStore(ctx, "Main Store"))
	require.NoError(t, svc.AddStore(ctx, "Main Store"))
	require.NoError(t, svc.AddStore(ctx, "  Main Store  "))

	// header plus exactly one data row
	assert.Len(t, client.rows(testStoreSheet), 2)

	stores, err := svc.ListStores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Store"}, stores)
}

func TestCatalogService_AddStore_EmptyNameRejected(t *testing.T) {
	svc, _ := setupCatalogServiceTest(t)

	err := svc.AddStore(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyCatalogName)
}

func TestCatalogService_CatalogsAreSeparate(t *testing.T) {
	svc, _ := setupCatalogServiceTest(t)
	ctx := context.Background()

	require.NoError(t, svc.AddStore(ctx, "Main Store"))
	require.NoError(t, svc.AddEmployee(ctx, "Jane Doe"))

	stores, err := svc.ListStores(ctx)
	require.NoError(t, err)
	employees, err := svc.ListEmployees(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Main Store"}, stores)
	assert.Equal(t, []string{"Jane Doe"}, employees)
}

func TestCatalogService_RefreshCacheWithoutCacheIsNoop(t *testing.T) {
	svc, _ := setupCatalogServiceTest(t)
	assert.NoError(t, svc.RefreshCache(context.Background()))
}
