package jobs

import (
	"log"
	"os"
	"strconv"

	"brickyard.GO/core/cache"
	"brickyard.GO/core/metrics"
	capacityService "brickyard.GO/service/capacity"
)

// Same key the /api/capacity handler reads; the snapshot pre-warms it.
const capacityCacheKey = "capacity_report"

const capacityCacheTTL = 30

// CapacitySnapshotJob recomputes the capacity report, warms the cache and the
// metrics gauge, and warns about materials running low.
func CapacitySnapshotJob(args ...string) {
	db, err := openDB()
	if err != nil {
		log.Printf("[cron] capacitysnapshot: db: %v", err)
		return
	}

	report, err := capacityService.NewCalculator(db).Report()
	if err != nil {
		log.Printf("[cron] capacitysnapshot: %v", err)
		return
	}

	cache.GetInstance().Set(capacityCacheKey, report, capacityCacheTTL, []string{"capacity"})
	metrics.CapacityRounds.Set(float64(report.MaxRounds))

	threshold := int64(10)
	if v := os.Getenv("LOW_STOCK_ROUNDS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			threshold = n
		}
	}
	for _, m := range report.Materials {
		if m.PerRoundKg > 0 && m.Rounds < threshold {
			log.Printf("[cron] capacitysnapshot: low stock: %s %.3f kg left (%d rounds)", m.Kind, m.StockKg, m.Rounds)
		}
	}
	log.Printf("[cron] capacitysnapshot: %d rounds, limited by %s", report.MaxRounds, report.LimitingMaterial)
}
