package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation counters for the inventory engine. Status is "ok" or "error".
var (
	ProcurementApprovals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brickyard_procurement_approvals_total",
		Help: "Procurement approval attempts by status.",
	}, []string{"status"})

	ProductionEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brickyard_production_entries_total",
		Help: "Production run recordings by status.",
	}, []string{"status"})

	Adjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brickyard_adjustments_total",
		Help: "Stock adjustment submissions by status.",
	}, []string{"status"})

	CapacityRounds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brickyard_capacity_rounds",
		Help: "Producible rounds from current stock (last computed).",
	})
)

// Status returns the label value for an operation outcome.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler exposes the prometheus registry for the /metrics route.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
