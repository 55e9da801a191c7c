package report

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/api"
	catalogRepo "brickyard.GO/model/repository/catalog"
	reportService "brickyard.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

func RegisterReportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/reports")
	svc := reportService.NewService(db)
	materials := catalogRepo.NewMaterialRepository(db)

	// GET /api/reports/summary?range=current_month – dashboard totals + pie data
	g.GET("/summary", func(c echo.Context) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		sum, err := svc.Summarize(from, to)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, sum)
	})

	// GET /api/reports/procurements?range=...&approved=true
	g.GET("/procurements", func(c echo.Context) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		rows, err := svc.Procurements(from, to, c.QueryParam("approved") == "true")
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"procurements": rows})
	})

	// GET /api/reports/procurements.xlsx – Excel download for accounting
	g.GET("/procurements.xlsx", func(c echo.Context) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		rows, err := svc.Procurements(from, to, false)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		mats, err := materials.List()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		f, err := reportService.ProcurementWorkbook(rows, mats)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="procurements.xlsx"`)
		c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Response().WriteHeader(http.StatusOK)
		return f.Write(c.Response())
	})

	// GET /api/reports/productions?range=...
	g.GET("/productions", func(c echo.Context) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		rows, err := svc.Productions(from, to)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"productions": rows})
	})

	// GET /api/reports/adjustments?range=...
	g.GET("/adjustments", func(c echo.Context) error {
		from, to, err := rangeFromQuery(c)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		rows, err := svc.Adjustments(from, to)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"adjustments": rows})
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
