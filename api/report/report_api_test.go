package report

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	adjustmentEntity "brickyard.GO/model/entity/adjustment"
	catalogEntity "brickyard.GO/model/entity/catalog"
	inventoryEntity "brickyard.GO/model/entity/inventory"
	procurementEntity "brickyard.GO/model/entity/procurement"
	productionEntity "brickyard.GO/model/entity/production"
	catalogRepo "brickyard.GO/model/repository/catalog"
	procurementService "brickyard.GO/service/procurement"
)

const (
	testUser = "admin"
	testPass = "secret"
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

func testServer(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	e := echo.New()
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		return user == testUser && pass == testPass, nil
	}))
	RegisterReportRoutes(apiGroup, db)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(testUser+":"+testPass)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedProcurement(t *testing.T, db *gorm.DB, day time.Time) {
	t.Helper()
	svc := procurementService.NewApprovalService(db)
	cement, _ := catalogRepo.NewMaterialRepository(db).GetByKind(catalogEntity.KindCement)
	p, err := svc.Submit(procurementService.SubmitInput{
		MaterialID: cement.MaterialID, VendorID: 1, Quantity: 100, Date: day, CreatedBy: "admin",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Approve(p.ProcurementID, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("Approve: %v", err)
	}
}

func TestReportAPI_Summary(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)
	seedProcurement(t, db, time.Now())

	rec := get(e, "/api/reports/summary?range=current_month")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sum struct {
		ProcurementCount int    `json:"procurement_count"`
		ProcurementSpend string `json:"procurement_spend"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.ProcurementCount != 1 {
		t.Errorf("procurement_count = %d, want 1", sum.ProcurementCount)
	}
	if sum.ProcurementSpend != "1000.00" {
		t.Errorf("procurement_spend = %s, want 1000.00", sum.ProcurementSpend)
	}
}

func TestReportAPI_Procurements(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)
	seedProcurement(t, db, time.Now())

	rec := get(e, "/api/reports/procurements?range=current_month&approved=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Procurements []procurementEntity.Procurement `json:"procurements"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if len(body.Procurements) != 1 {
		t.Errorf("procurements = %d, want 1", len(body.Procurements))
	}
}

func TestReportAPI_ProcurementsExcel(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)
	seedProcurement(t, db, time.Now())

	rec := get(e, "/api/reports/procurements.xlsx?range=current_month")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %s", ct)
	}
	// xlsx is a zip archive: PK magic bytes.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip/xlsx payload")
	}
}

func TestReportAPI_UnknownRange_Returns400(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)

	rec := get(e, "/api/reports/summary?range=decade")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
