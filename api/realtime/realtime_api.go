package realtime

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"brickyard.GO/api"
	inventoryEntity "brickyard.GO/model/entity/inventory"
	inventoryRepo "brickyard.GO/model/repository/inventory"
	capacityService "brickyard.GO/service/capacity"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// OverviewResponse feeds the dashboard's top strip in one round trip.
type OverviewResponse struct {
	Stock         []inventoryEntity.StockEntry  `json:"stock"`
	FinishedGoods *inventoryEntity.FinishedGoods `json:"finished_goods"`
	Capacity      *capacityService.Report        `json:"capacity"`
}

// RegisterRealtimeRoutes sets up the combined dashboard overview endpoint.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/realtime")
	stock := inventoryRepo.NewStockRepository(db)
	finished := inventoryRepo.NewFinishedGoodsRepository(db)
	calc := capacityService.NewCalculator(db)

	// GET /api/realtime/overview – stock + finished goods + capacity, fetched in parallel
	g.GET("/overview", func(c echo.Context) error {
		start := time.Now()

		var resp OverviewResponse
		eg := new(errgroup.Group)

		eg.Go(func() error {
			entries, err := stock.List()
			if err != nil {
				return err
			}
			resp.Stock = entries
			return nil
		})
		eg.Go(func() error {
			fg, err := finished.Get()
			if err != nil {
				return err
			}
			resp.FinishedGoods = fg
			return nil
		})
		eg.Go(func() error {
			report, err := calc.Report()
			if err != nil {
				return err
			}
			resp.Capacity = report
			return nil
		})

		if err := eg.Wait(); err != nil {
			return api.ErrorJSON(c, err)
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, resp)
	})
}
