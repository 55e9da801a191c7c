package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	catalogEntity "brickyard.GO/model/entity/catalog"
	procurementEntity "brickyard.GO/model/entity/procurement"
)

// ProcurementWorkbook renders procurement history as an .xlsx download for the
// accounting screens.
func ProcurementWorkbook(rows []procurementEntity.Procurement, materials []catalogEntity.Material) (*excelize.File, error) {
	nameByID := make(map[uint]string, len(materials))
	for _, m := range materials {
		nameByID[m.MaterialID] = m.Name
	}

	f := excelize.NewFile()
	const sheet = "Procurements"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Date", "Material", "Vendor", "Quantity (kg)", "Approved", "Rate/Unit", "Total Price", "Created By"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, p := range rows {
		name := nameByID[p.MaterialID]
		if name == "" {
			name = fmt.Sprintf("material %d", p.MaterialID)
		}
		rate, total := "", ""
		if p.RatePerUnit.Valid {
			rate = p.RatePerUnit.Decimal.StringFixed(2)
		}
		if p.TotalPrice.Valid {
			total = p.TotalPrice.Decimal.StringFixed(2)
		}
		values := []interface{}{
			p.ProcurementID,
			time.Time(p.ProcuredOn).Format("2006-01-02"),
			name,
			p.VendorID,
			p.Quantity,
			p.Approved,
			rate,
			total,
			p.CreatedBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
