package stock

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"

	catalogEntity "brickyard.GO/model/entity/catalog"
	catalogRepo "brickyard.GO/model/repository/catalog"
	inventoryRepo "brickyard.GO/model/repository/inventory"
)

// StockItemInput is one opening-balance row.
type StockItemInput struct {
	Kind     string  `json:"kind"`
	Quantity float64 `json:"quantity"`
}

// ImportResult reports a bulk import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Warnings []string
}

// ImportOpeningBalances upserts opening stock quantities by material kind.
// Bad rows are skipped with a warning rather than failing the batch; this is
// the bootstrap path, not the audited mutation path.
func ImportOpeningBalances(db *gorm.DB, items []StockItemInput) (*ImportResult, error) {
	materials, err := catalogRepo.NewMaterialRepository(db).List()
	if err != nil {
		return nil, err
	}
	idByKind := make(map[catalogEntity.Kind]uint, len(materials))
	for _, m := range materials {
		idByKind[m.Kind] = m.MaterialID
	}

	stock := inventoryRepo.NewStockRepository(db)
	res := &ImportResult{}
	for _, item := range items {
		kind := catalogEntity.Kind(strings.TrimSpace(item.Kind))
		id, ok := idByKind[kind]
		if !ok {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("kind=%s: unknown material", item.Kind))
			continue
		}
		if item.Quantity < 0 {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("kind=%s: negative quantity %v", item.Kind, item.Quantity))
			continue
		}
		if err := stock.UpsertOpening(id, item.Quantity); err != nil {
			return res, err
		}
		res.Imported++
	}
	return res, nil
}

// ImportCSV reads kind,quantity rows from a CSV file (header required) and
// runs an opening-balance import.
func ImportCSV(db *gorm.DB, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return &ImportResult{}, nil
	}

	colIndex := map[string]int{}
	for i, h := range rows[0] {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	kindCol, ok := colIndex["kind"]
	if !ok {
		return nil, fmt.Errorf("csv: missing kind column")
	}
	qtyCol, ok := colIndex["quantity"]
	if !ok {
		return nil, fmt.Errorf("csv: missing quantity column")
	}

	items := make([]StockItemInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if kindCol >= len(row) || qtyCol >= len(row) {
			continue
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(row[qtyCol]), 64)
		if err != nil {
			qty = -1 // flagged as a warning by the importer
		}
		items = append(items, StockItemInput{Kind: row[kindCol], Quantity: qty})
	}
	return ImportOpeningBalances(db, items)
}
