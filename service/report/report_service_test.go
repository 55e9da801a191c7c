package report

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	adjustmentEntity "brickyard.GO/model/entity/adjustment"
	catalogEntity "brickyard.GO/model/entity/catalog"
	inventoryEntity "brickyard.GO/model/entity/inventory"
	procurementEntity "brickyard.GO/model/entity/procurement"
	productionEntity "brickyard.GO/model/entity/production"
	catalogRepo "brickyard.GO/model/repository/catalog"
	procurementService "brickyard.GO/service/procurement"
	productionService "brickyard.GO/service/production"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&catalogEntity.Material{},
		&inventoryEntity.StockEntry{},
		&inventoryEntity.FinishedGoods{},
		&procurementEntity.Procurement{},
		&productionEntity.ProductionEntry{},
		&productionEntity.Consumption{},
		&adjustmentEntity.Adjustment{},
		&adjustmentEntity.Line{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := catalogRepo.NewMaterialRepository(db).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	from, to, err := ResolveRange(now, RangeCurrentMonth, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("current_month: %v", err)
	}
	if from.Format("2006-01-02") != "2025-03-01" || to.Format("2006-01-02") != "2025-03-31" {
		t.Errorf("current_month = [%s, %s]", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	// Empty name defaults to the current month.
	dfrom, dto, err := ResolveRange(now, "", time.Time{}, time.Time{})
	if err != nil || !dfrom.Equal(from) || !dto.Equal(to) {
		t.Errorf("empty name: [%s, %s] err=%v, want current_month", dfrom, dto, err)
	}

	from, to, err = ResolveRange(now, RangeLastMonth, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("last_month: %v", err)
	}
	if from.Format("2006-01-02") != "2025-02-01" || to.Format("2006-01-02") != "2025-02-28" {
		t.Errorf("last_month = [%s, %s]", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	from, to, err = ResolveRange(now, RangeLastYear, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("last_year: %v", err)
	}
	if from.Format("2006-01-02") != "2024-01-01" || to.Format("2006-01-02") != "2024-12-31" {
		t.Errorf("last_year = [%s, %s]", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
}

func TestResolveRange_Custom(t *testing.T) {
	now := time.Now()
	f := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	u := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	from, to, err := ResolveRange(now, RangeCustom, f, u)
	if err != nil || !from.Equal(f) || !to.Equal(u) {
		t.Errorf("custom = [%s, %s] err=%v", from, to, err)
	}

	if _, _, err := ResolveRange(now, RangeCustom, time.Time{}, u); !apperr.IsValidation(err) {
		t.Errorf("missing from: err = %v, want validation error", err)
	}
	if _, _, err := ResolveRange(now, RangeCustom, u, f); !apperr.IsValidation(err) {
		t.Errorf("inverted bounds: err = %v, want validation error", err)
	}
	if _, _, err := ResolveRange(now, "fortnight", time.Time{}, time.Time{}); !apperr.IsValidation(err) {
		t.Errorf("unknown name: err = %v, want validation error", err)
	}
}

func TestService_Summarize(t *testing.T) {
	db := testDB(t)

	cement, err := catalogRepo.NewMaterialRepository(db).GetByKind(catalogEntity.KindCement)
	if err != nil {
		t.Fatalf("GetByKind: %v", err)
	}

	procs := procurementService.NewApprovalService(db)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	p1, err := procs.Submit(procurementService.SubmitInput{
		MaterialID: cement.MaterialID, VendorID: 1, Quantity: 100, Date: day, CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := procs.Approve(p1.ProcurementID, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	// A second, still-pending procurement counts but contributes no spend.
	if _, err := procs.Submit(procurementService.SubmitInput{
		MaterialID: cement.MaterialID, VendorID: 1, Quantity: 50, Date: day, CreatedBy: "admin",
	}); err != nil {
		t.Fatalf("Submit pending: %v", err)
	}

	prod := productionService.NewConsumptionService(db)
	if _, err := prod.Record(productionService.RecordInput{
		Date: day, Rounds: 2, Bricks: 350, CreatedBy: "operator",
		Consumption: map[catalogEntity.Kind]float64{catalogEntity.KindCement: 50},
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	svc := NewService(db)
	sum, err := svc.Summarize(day.AddDate(0, 0, -5), day.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if sum.ProcurementCount != 2 {
		t.Errorf("ProcurementCount = %d, want 2", sum.ProcurementCount)
	}
	if sum.ProcurementSpend.StringFixed(2) != "1000.00" {
		t.Errorf("ProcurementSpend = %s, want 1000.00", sum.ProcurementSpend.StringFixed(2))
	}
	if sum.ProductionRounds != 2 || sum.ProductionBricks != 350 {
		t.Errorf("production = %d rounds / %d bricks, want 2/350", sum.ProductionRounds, sum.ProductionBricks)
	}
	if len(sum.SpendByMaterial) != 5 {
		t.Fatalf("SpendByMaterial = %d slices, want 5", len(sum.SpendByMaterial))
	}
	for _, ct := range sum.SpendByMaterial {
		want := "0.00"
		if ct.Kind == catalogEntity.KindCement {
			want = "1000.00"
		}
		if ct.Total.StringFixed(2) != want {
			t.Errorf("%s spend = %s, want %s", ct.Kind, ct.Total.StringFixed(2), want)
		}
	}
}

func TestService_Summarize_EmptyRange(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	sum, err := svc.Summarize(from, to)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.ProcurementCount != 0 || sum.AdjustmentCount != 0 || sum.ProductionBricks != 0 {
		t.Errorf("empty range summary not zeroed: %+v", sum)
	}
	if sum.ProcurementSpend.StringFixed(2) != "0.00" {
		t.Errorf("ProcurementSpend = %s, want 0.00", sum.ProcurementSpend.StringFixed(2))
	}
}

func TestProcurementWorkbook(t *testing.T) {
	db := testDB(t)

	cement, _ := catalogRepo.NewMaterialRepository(db).GetByKind(catalogEntity.KindCement)
	procs := procurementService.NewApprovalService(db)
	p, err := procs.Submit(procurementService.SubmitInput{
		MaterialID: cement.MaterialID, VendorID: 3, Quantity: 200,
		Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := procs.Approve(p.ProcurementID, decimal.NewFromFloat(8.25)); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	svc := NewService(db)
	rows, err := svc.Procurements(
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		false,
	)
	if err != nil {
		t.Fatalf("Procurements: %v", err)
	}

	materials, err := catalogRepo.NewMaterialRepository(db).List()
	if err != nil {
		t.Fatalf("List materials: %v", err)
	}
	f, err := ProcurementWorkbook(rows, materials)
	if err != nil {
		t.Fatalf("ProcurementWorkbook: %v", err)
	}
	defer f.Close()

	cell, err := f.GetCellValue("Procurements", "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if cell == "" {
		t.Error("first data row empty")
	}
}
