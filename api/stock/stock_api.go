package stock

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/api"
	capacityApi "brickyard.GO/api/capacity"
	catalogRepo "brickyard.GO/model/repository/catalog"
	inventoryRepo "brickyard.GO/model/repository/inventory"
	stockService "brickyard.GO/service/stock"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

// stockRow is one material's ledger line for the stock screen.
type stockRow struct {
	MaterialID uint    `json:"material_id"`
	Kind       string  `json:"kind"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity"`
	Version    uint64  `json:"version"`
}

func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/stock")
	materials := catalogRepo.NewMaterialRepository(db)
	entries := inventoryRepo.NewStockRepository(db)
	finished := inventoryRepo.NewFinishedGoodsRepository(db)

	// GET /api/stock – current ledger, catalog order
	g.GET("", func(c echo.Context) error {
		mats, err := materials.List()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		stock, err := entries.List()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		byMaterial := make(map[uint]stockRow, len(stock))
		for _, e := range stock {
			byMaterial[e.MaterialID] = stockRow{Quantity: e.Quantity, Version: e.Version}
		}
		rows := make([]stockRow, 0, len(mats))
		for _, m := range mats {
			row := byMaterial[m.MaterialID]
			row.MaterialID = m.MaterialID
			row.Kind = string(m.Kind)
			row.Name = m.Name
			row.Unit = m.Unit
			rows = append(rows, row)
		}
		return c.JSON(http.StatusOK, echo.Map{"stock": rows})
	})

	// GET /api/stock/finished-goods – ready brick count
	g.GET("/finished-goods", func(c echo.Context) error {
		fg, err := finished.Get()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, fg)
	})

	// POST /api/stock/import – opening-balance bulk upsert
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			Items []stockService.StockItemInput `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}

		res, err := stockService.ImportOpeningBalances(db, body.Items)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		capacityApi.Invalidate()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"imported":            res.Imported,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	})
}
