package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/youvit/gramedia-display-backend/config"
	"github.com/youvit/gramedia-display-backend/internal/app/repository"
	"github.com/youvit/gramedia-display-backend/internal/app/service"
	"github.com/youvit/gramedia-display-backend/internal/sheets"
)

// Imports store or employee names from the first column of an existing
// workbook into the catalog sheets.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> <stores|employees>")
	}

	filePath := os.Args[1]
	catalog := os.Args[2]
	if catalog != "stores" && catalog != "employees" {
		log.Fatal("Second argument must be \"stores\" or \"employees\"")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	workbook, err := sheets.OpenWorkbook(cfg.Sheets.WorkbookPath)
	if err != nil {
		log.Fatal("Failed to open workbook:", err)
	}
	defer workbook.Close()

	storeRepo := repository.NewStoreCatalogRepository(workbook, cfg.Sheets.StoreSheet)
	employeeRepo := repository.NewEmployeeCatalogRepository(workbook, cfg.Sheets.EmployeeSheet)

	ctx := context.Background()
	if err := storeRepo.EnsureStructure(ctx); err != nil {
		log.Fatal("Failed to prepare store sheet:", err)
	}
	if err := employeeRepo.EnsureStructure(ctx); err != nil {
		log.Fatal("Failed to prepare employee sheet:", err)
	}

	catalogService := service.NewCatalogService(storeRepo, employeeRepo, nil)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	names, err := readNamesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total %s to import: %d\n", catalog, len(names))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	add := catalogService.AddStore
	if catalog == "employees" {
		add = catalogService.AddEmployee
	}

	imported := 0
	skipped := 0
	for _, name := range names {
		if err := add(ctx, name); err != nil {
			fmt.Printf("Skipping %q: %v\n", name, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Imported: %d, skipped: %d\n", imported, skipped)
}

// readNamesFromXLSX reads the first column of the first sheet, skipping the
// header row and blank cells.
func readNamesFromXLSX(filePath string) ([]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var names []string
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
