package adjustment

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/api"
	capacityApi "brickyard.GO/api/capacity"
	adjustmentService "brickyard.GO/service/adjustment"
	reportService "brickyard.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterAdjustmentRoutes)
}

func RegisterAdjustmentRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/adjustments")
	svc := adjustmentService.NewReconciliationService(db)

	// POST /api/adjustments – submit a stock count; overwrites the ledger
	g.POST("", func(c echo.Context) error {
		var body struct {
			Date      string             `json:"date"`
			Reason    string             `json:"reason"`
			CreatedBy string             `json:"created_by"`
			Adjusted  map[string]float64 `json:"adjusted"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		adj, err := svc.Submit(adjustmentService.SubmitInput{
			Date:      date,
			Reason:    body.Reason,
			CreatedBy: body.CreatedBy,
			Adjusted:  body.Adjusted,
		})
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		capacityApi.Invalidate()
		return c.JSON(http.StatusCreated, adj)
	})

	// GET /api/adjustments?range=last_month – audit history
	g.GET("", func(c echo.Context) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		list, err := svc.ListByDateRange(from, to)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"adjustments": list})
	})
}

func rangeFromQuery(c echo.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if v := c.QueryParam("from"); v != "" {
		from, _ = time.Parse("2006-01-02", v)
	}
	if v := c.QueryParam("to"); v != "" {
		to, _ = time.Parse("2006-01-02", v)
	}
	return reportService.ResolveRange(time.Now(), c.QueryParam("range"), from, to)
}
