package procurement

import (
	"errors"
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
	inventoryRepo "brickyard.GO/model/repository/inventory"
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

func materialID(t *testing.T, db *gorm.DB, kind catalogEntity.Kind) uint {
	t.Helper()
	m, err := catalogRepo.NewMaterialRepository(db).GetByKind(kind)
	if err != nil {
		t.Fatalf("GetByKind(%s): %v", kind, err)
	}
	return m.MaterialID
}

func TestApprovalService_Submit(t *testing.T) {
	db := testDB(t)
	svc := NewApprovalService(db)

	p, err := svc.Submit(SubmitInput{
		MaterialID: materialID(t, db, catalogEntity.KindCement),
		VendorID:   7,
		Quantity:   500,
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy:  "admin",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if p.Approved {
		t.Error("new procurement must start unapproved")
	}
	if p.RatePerUnit.Valid || p.TotalPrice.Valid {
		t.Error("price fields must stay null until approval")
	}

	pending, err := svc.ListUnapproved()
	if err != nil {
		t.Fatalf("ListUnapproved: %v", err)
	}
	if len(pending) != 1 || pending[0].ProcurementID != p.ProcurementID {
		t.Errorf("pending queue = %v, want the submitted procurement", pending)
	}
}

func TestApprovalService_Submit_Validation(t *testing.T) {
	db := testDB(t)
	svc := NewApprovalService(db)
	cement := materialID(t, db, catalogEntity.KindCement)

	if _, err := svc.Submit(SubmitInput{MaterialID: cement, VendorID: 1, Quantity: 0}); !apperr.IsValidation(err) {
		t.Errorf("zero quantity: err = %v, want validation error", err)
	}
	if _, err := svc.Submit(SubmitInput{MaterialID: cement, VendorID: 0, Quantity: 10}); !apperr.IsValidation(err) {
		t.Errorf("missing vendor: err = %v, want validation error", err)
	}
	if _, err := svc.Submit(SubmitInput{MaterialID: 999, VendorID: 1, Quantity: 10}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown material: err = %v, want ErrNotFound", err)
	}
}

func TestApprovalService_Approve_CreditsStock(t *testing.T) {
	db := testDB(t)
	svc := NewApprovalService(db)
	cement := materialID(t, db, catalogEntity.KindCement)

	p, err := svc.Submit(SubmitInput{
		MaterialID: cement,
		VendorID:   7,
		Quantity:   500,
		Date:       time.Now(),
		CreatedBy:  "admin",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	approved, err := svc.Approve(p.ProcurementID, decimal.NewFromFloat(12.5))
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !approved.Approved {
		t.Error("procurement not marked approved")
	}
	if got := approved.TotalPrice.Decimal.StringFixed(2); got != "6250.00" {
		t.Errorf("TotalPrice = %s, want 6250.00", got)
	}
	if got := approved.RatePerUnit.Decimal.StringFixed(2); got != "12.50" {
		t.Errorf("RatePerUnit = %s, want 12.50", got)
	}
	if approved.ApprovedAt == nil {
		t.Error("ApprovedAt not set")
	}

	entry, err := inventoryRepo.NewStockRepository(db).GetByMaterial(cement)
	if err != nil {
		t.Fatalf("GetByMaterial: %v", err)
	}
	if entry.Quantity != 500 {
		t.Errorf("stock after approval = %v, want 500", entry.Quantity)
	}
}

func TestApprovalService_Approve_Twice(t *testing.T) {
	db := testDB(t)
	svc := NewApprovalService(db)
	cement := materialID(t, db, catalogEntity.KindCement)

	p, _ := svc.Submit(SubmitInput{MaterialID: cement, VendorID: 1, Quantity: 100, Date: time.Now(), CreatedBy: "admin"})
	if _, err := svc.Approve(p.ProcurementID, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("first Approve: %v", err)
	}

	_, err := svc.Approve(p.ProcurementID, decimal.NewFromInt(11))
	if !errors.Is(err, apperr.ErrAlreadyApproved) {
		t.Fatalf("second Approve = %v, want ErrAlreadyApproved", err)
	}

	// Stock credited exactly once.
	entry, _ := inventoryRepo.NewStockRepository(db).GetByMaterial(cement)
	if entry.Quantity != 100 {
		t.Errorf("stock = %v, want 100 (single credit)", entry.Quantity)
	}
}

func TestApprovalService_Approve_InvalidRate(t *testing.T) {
	db := testDB(t)
	svc := NewApprovalService(db)

	if _, err := svc.Approve(1, decimal.Zero); !apperr.IsValidation(err) {
		t.Errorf("zero rate: err = %v, want validation error", err)
	}
	if _, err := svc.Approve(1, decimal.NewFromInt(-3)); !apperr.IsValidation(err) {
		t.Errorf("negative rate: err = %v, want validation error", err)
	}
}

func TestApprovalService_Approve_Unknown(t *testing.T) {
	db := testDB(t)
	svc := NewApprovalService(db)

	if _, err := svc.Approve(4242, decimal.NewFromInt(5)); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}
