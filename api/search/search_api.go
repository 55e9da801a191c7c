package search

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/api"
	searchService "brickyard.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterSearchRoutes)
}

func RegisterSearchRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/search")

	// GET /api/search/procurements?q=cement&size=20
	g.GET("/procurements", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
		}
		size := 20
		if v := c.QueryParam("size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				size = n
			}
		}
		svc := searchService.GetSearchService()
		if !svc.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "elasticsearch not configured"})
		}
		hits, err := svc.Search(c.Request().Context(), q, size)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"hits": hits})
	})
}
