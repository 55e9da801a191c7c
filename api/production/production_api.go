package production

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/api"
	capacityApi "brickyard.GO/api/capacity"
	catalogEntity "brickyard.GO/model/entity/catalog"
	productionService "brickyard.GO/service/production"
)

func init() {
	api.RegisterModule(RegisterProductionRoutes)
}

func RegisterProductionRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/productions")
	svc := productionService.NewConsumptionService(db)

	// POST /api/productions – record one run; debits stock, credits bricks
	g.POST("", func(c echo.Context) error {
		var body struct {
			Date        string             `json:"date"`
			Rounds      int                `json:"rounds"`
			Bricks      int                `json:"bricks"`
			CreatedBy   string             `json:"created_by"`
			Consumption map[string]float64 `json:"consumption"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		consumption := make(map[catalogEntity.Kind]float64, len(body.Consumption))
		for k, v := range body.Consumption {
			consumption[catalogEntity.Kind(k)] = v
		}
		entry, err := svc.Record(productionService.RecordInput{
			Date:        date,
			Rounds:      body.Rounds,
			Bricks:      body.Bricks,
			CreatedBy:   body.CreatedBy,
			Consumption: consumption,
		})
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		capacityApi.Invalidate()
		return c.JSON(http.StatusCreated, entry)
	})
}
