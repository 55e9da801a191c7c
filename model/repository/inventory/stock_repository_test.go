package inventory

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	catalogEntity "brickyard.GO/model/entity/catalog"
	inventoryEntity "brickyard.GO/model/entity/inventory"
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
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMaterial(t *testing.T, db *gorm.DB, kind catalogEntity.Kind, opening float64) uint {
	t.Helper()
	m := catalogEntity.Material{Kind: kind, Name: string(kind), Unit: "kg", PerRoundKg: 25}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}
	entry := inventoryEntity.StockEntry{MaterialID: m.MaterialID, Quantity: opening}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	return m.MaterialID
}

func TestStockRepository_CreditDebit(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)
	id := seedMaterial(t, db, catalogEntity.KindCement, 100)

	if err := repo.Credit(id, 50); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := repo.Debit(id, 30); err != nil {
		t.Fatalf("Debit: %v", err)
	}

	entry, err := repo.GetByMaterial(id)
	if err != nil {
		t.Fatalf("GetByMaterial: %v", err)
	}
	if entry.Quantity != 120 {
		t.Errorf("Quantity = %v, want 120", entry.Quantity)
	}
	if entry.Version != 2 {
		t.Errorf("Version = %d, want 2 (one per mutation)", entry.Version)
	}
}

func TestStockRepository_DebitInsufficient(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)
	id := seedMaterial(t, db, catalogEntity.KindFlyAsh, 40)

	err := repo.Debit(id, 41)
	if !apperr.IsInsufficientStock(err) {
		t.Fatalf("Debit = %v, want InsufficientStockError", err)
	}
	var ise *apperr.InsufficientStockError
	errors.As(err, &ise)
	if ise.Requested != 41 || ise.Available != 40 {
		t.Errorf("error reports requested=%v available=%v, want 41/40", ise.Requested, ise.Available)
	}

	// Rejected debit must leave the ledger untouched.
	entry, _ := repo.GetByMaterial(id)
	if entry.Quantity != 40 || entry.Version != 0 {
		t.Errorf("ledger mutated after rejected debit: qty=%v version=%d", entry.Quantity, entry.Version)
	}
}

func TestStockRepository_DebitExactBalance(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)
	id := seedMaterial(t, db, catalogEntity.KindWetAsh, 90)

	if err := repo.Debit(id, 90); err != nil {
		t.Fatalf("Debit to zero: %v", err)
	}
	entry, _ := repo.GetByMaterial(id)
	if entry.Quantity != 0 {
		t.Errorf("Quantity = %v, want 0", entry.Quantity)
	}
}

func TestStockRepository_InvalidAmounts(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)
	id := seedMaterial(t, db, catalogEntity.KindCement, 10)

	if err := repo.Credit(id, 0); !apperr.IsValidation(err) {
		t.Errorf("Credit(0) = %v, want validation error", err)
	}
	if err := repo.Debit(id, -5); !apperr.IsValidation(err) {
		t.Errorf("Debit(-5) = %v, want validation error", err)
	}
	if err := repo.Set(id, -1, 0); !apperr.IsValidation(err) {
		t.Errorf("Set(-1) = %v, want validation error", err)
	}
}

func TestStockRepository_CreditUnknownMaterial(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)

	if err := repo.Credit(999, 10); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Credit(unknown) = %v, want ErrNotFound", err)
	}
}

func TestStockRepository_SetCompareAndSwap(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)
	id := seedMaterial(t, db, catalogEntity.KindMarblePowder, 1000)

	entry, err := repo.GetByMaterial(id)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if err := repo.Set(id, 400, entry.Version); err != nil {
		t.Fatalf("Set with fresh version: %v", err)
	}

	// The stale snapshot version must now be rejected.
	err = repo.Set(id, 500, entry.Version)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("Set with stale version = %v, want ErrConflict", err)
	}

	after, _ := repo.GetByMaterial(id)
	if after.Quantity != 400 {
		t.Errorf("Quantity = %v, want 400 (stale write not applied)", after.Quantity)
	}
}

func TestStockRepository_SetConflictAfterConcurrentCredit(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)
	id := seedMaterial(t, db, catalogEntity.KindCrusherPowder, 100)

	snapshot, _ := repo.GetByMaterial(id)

	// A credit lands between snapshot and corrective write.
	if err := repo.Credit(id, 25); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	err := repo.Set(id, 90, snapshot.Version)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("Set after concurrent credit = %v, want ErrConflict", err)
	}
}

func TestStockRepository_UpsertOpening(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)

	m := catalogEntity.Material{Kind: catalogEntity.KindCement, Name: "Cement", PerRoundKg: 25}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}

	// First upsert creates the ledger row.
	if err := repo.UpsertOpening(m.MaterialID, 500); err != nil {
		t.Fatalf("UpsertOpening create: %v", err)
	}
	entry, err := repo.GetByMaterial(m.MaterialID)
	if err != nil {
		t.Fatalf("GetByMaterial: %v", err)
	}
	if entry.Quantity != 500 {
		t.Errorf("Quantity = %v, want 500", entry.Quantity)
	}

	// Second upsert overwrites in place.
	if err := repo.UpsertOpening(m.MaterialID, 750); err != nil {
		t.Fatalf("UpsertOpening update: %v", err)
	}
	entry, _ = repo.GetByMaterial(m.MaterialID)
	if entry.Quantity != 750 {
		t.Errorf("Quantity = %v, want 750", entry.Quantity)
	}
}

func TestFinishedGoodsRepository_GetCreatesRow(t *testing.T) {
	db := testDB(t)
	repo := NewFinishedGoodsRepository(db)

	fg, err := repo.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fg.ID != inventoryEntity.FinishedGoodsID || fg.Bricks != 0 {
		t.Errorf("Get = id %d bricks %v, want row 1 at zero", fg.ID, fg.Bricks)
	}
}

func TestFinishedGoodsRepository_CreditAndSet(t *testing.T) {
	db := testDB(t)
	repo := NewFinishedGoodsRepository(db)

	if err := repo.Credit(350); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	fg, _ := repo.Get()
	if fg.Bricks != 350 {
		t.Errorf("Bricks = %v, want 350", fg.Bricks)
	}

	if err := repo.Set(300, fg.Version); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(200, fg.Version); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("Set with stale version = %v, want ErrConflict", err)
	}
	fg, _ = repo.Get()
	if fg.Bricks != 300 {
		t.Errorf("Bricks = %v, want 300", fg.Bricks)
	}
}
