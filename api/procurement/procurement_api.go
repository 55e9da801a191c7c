package procurement

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"brickyard.GO/api"
	capacityApi "brickyard.GO/api/capacity"
	procurementService "brickyard.GO/service/procurement"
)

func init() {
	api.RegisterModule(RegisterProcurementRoutes)
}

func RegisterProcurementRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/procurements")
	svc := procurementService.NewApprovalService(db)

	// POST /api/procurements – submit an unapproved purchase
	g.POST("", func(c echo.Context) error {
		var body struct {
			MaterialID uint    `json:"material_id"`
			VendorID   uint    `json:"vendor_id"`
			Quantity   float64 `json:"quantity"`
			Date       string  `json:"date"`
			CreatedBy  string  `json:"created_by"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		p, err := svc.Submit(procurementService.SubmitInput{
			MaterialID: body.MaterialID,
			VendorID:   body.VendorID,
			Quantity:   body.Quantity,
			Date:       date,
			CreatedBy:  body.CreatedBy,
		})
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusCreated, p)
	})

	// GET /api/procurements/pending – the approval queue
	g.GET("/pending", func(c echo.Context) error {
		list, err := svc.ListUnapproved()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"procurements": list})
	})

	// POST /api/procurements/:id/approve – price it and credit stock
	g.POST("/:id/approve", func(c echo.Context) error {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		var body struct {
			RatePerUnit string `json:"rate_per_unit"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		rate, err := decimal.NewFromString(body.RatePerUnit)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rate_per_unit must be a decimal number"})
		}
		p, err := svc.Approve(id, rate)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		capacityApi.Invalidate()
		return c.JSON(http.StatusOK, p)
	})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err
}
