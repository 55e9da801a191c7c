package capacity

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/api"
	"brickyard.GO/config"
	"brickyard.GO/core/cache"
	"brickyard.GO/core/metrics"
	capacityService "brickyard.GO/service/capacity"
)

func init() {
	api.RegisterModule(RegisterCapacityRoutes)
}

// CacheKey is where the latest capacity report lives, in the in-process cache
// and (when configured) Redis. The cron snapshot job warms the same keys.
const CacheKey = "capacity_report"

// CacheTTL in seconds. The report is cheap to recompute; the TTL only shields
// dashboard refresh storms.
const CacheTTL = 30

func RegisterCapacityRoutes(apiGroup *echo.Group, db *gorm.DB) {
	calc := capacityService.NewCalculator(db)

	// GET /api/capacity – rounds/bricks producible from current stock
	apiGroup.GET("/capacity", func(c echo.Context) error {
		if v, ok := cache.GetInstance().Get(CacheKey); ok {
			if report, isReport := v.(*capacityService.Report); isReport {
				return c.JSON(http.StatusOK, report)
			}
		}
		report, err := calc.Report()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		StoreReport(report)
		return c.JSON(http.StatusOK, report)
	})
}

// StoreReport caches a computed report and refreshes the capacity gauge.
func StoreReport(report *capacityService.Report) {
	cache.GetInstance().Set(CacheKey, report, CacheTTL, []string{"capacity"})
	metrics.CapacityRounds.Set(float64(report.MaxRounds))
	if config.RedisClient != nil {
		if payload, err := json.Marshal(report); err == nil {
			config.RedisClient.Set(config.RedisCtx(), CacheKey, payload, 0)
		}
	}
}

// Invalidate drops the cached report. Called after ledger mutations.
func Invalidate() {
	cache.GetInstance().Delete(CacheKey)
}
