package graphqlserver

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brickyard.GO/graphql"
	"brickyard.GO/graphql/registry"
	procurementEntity "brickyard.GO/model/entity/procurement"
	catalogRepo "brickyard.GO/model/repository/catalog"
	inventoryRepo "brickyard.GO/model/repository/inventory"
	procurementRepo "brickyard.GO/model/repository/procurement"
	capacityService "brickyard.GO/service/capacity"
)

// RootResolver resolves the dashboard Query type. All fields are read-only
// views over the inventory engine; mutations go through the JSON API.
type RootResolver struct {
	DB *gorm.DB
}

// --- result types (field resolvers) ---

type CapacityReport struct {
	MaxRounds           int32
	LimitingMaterial    string
	TotalBricks         int32
	TotalRoundCost      string
	TotalProductionCost string
	Materials           []MaterialRounds
}

type MaterialRounds struct {
	Kind       string
	Name       string
	StockKg    float64
	PerRoundKg float64
	Rounds     int32
}

type StockLevel struct {
	MaterialID graphqlID
	Kind       string
	Name       string
	Unit       string
	Quantity   float64
}

type FinishedGoods struct {
	Bricks    float64
	UpdatedAt string
}

type Procurement struct {
	ProcurementID graphqlID
	MaterialID    graphqlID
	VendorID      graphqlID
	Quantity      float64
	ProcuredOn    string
	Approved      bool
	RatePerUnit   *string
	TotalPrice    *string
	CreatedBy     string
}

type ProcurementPage struct {
	Items       []Procurement
	TotalCount  int32
	PageSize    int32
	CurrentPage int32
}

type graphqlID = gql.ID

// --- query fields ---

func (r *RootResolver) Capacity(ctx context.Context) (*CapacityReport, error) {
	report, err := capacityService.NewCalculator(r.DB).Report()
	if err != nil {
		return nil, err
	}
	out := &CapacityReport{
		MaxRounds:           int32(report.MaxRounds),
		LimitingMaterial:    string(report.LimitingMaterial),
		TotalBricks:         int32(report.TotalBricks),
		TotalRoundCost:      report.TotalRoundCost.StringFixed(2),
		TotalProductionCost: report.TotalProductionCost.StringFixed(2),
	}
	for _, m := range report.Materials {
		out.Materials = append(out.Materials, MaterialRounds{
			Kind:       string(m.Kind),
			Name:       m.Name,
			StockKg:    m.StockKg,
			PerRoundKg: m.PerRoundKg,
			Rounds:     int32(m.Rounds),
		})
	}
	return out, nil
}

func (r *RootResolver) Stock(ctx context.Context) ([]StockLevel, error) {
	materials, err := catalogRepo.NewMaterialRepository(r.DB).List()
	if err != nil {
		return nil, err
	}
	entries, err := inventoryRepo.NewStockRepository(r.DB).List()
	if err != nil {
		return nil, err
	}
	qtyByMaterial := make(map[uint]float64, len(entries))
	for _, e := range entries {
		qtyByMaterial[e.MaterialID] = e.Quantity
	}
	out := make([]StockLevel, 0, len(materials))
	for _, m := range materials {
		out = append(out, StockLevel{
			MaterialID: idFromUint(m.MaterialID),
			Kind:       string(m.Kind),
			Name:       m.Name,
			Unit:       m.Unit,
			Quantity:   qtyByMaterial[m.MaterialID],
		})
	}
	return out, nil
}

func (r *RootResolver) FinishedGoods(ctx context.Context) (*FinishedGoods, error) {
	fg, err := inventoryRepo.NewFinishedGoodsRepository(r.DB).Get()
	if err != nil {
		return nil, err
	}
	return &FinishedGoods{
		Bricks:    fg.Bricks,
		UpdatedAt: fg.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ProcurementsArgs matches the procurements query arguments (defaults in schema: pageSize=20, currentPage=1).
type ProcurementsArgs struct {
	PageSize    int32
	CurrentPage int32
	Approved    *bool
}

func (r *RootResolver) Procurements(ctx context.Context, args ProcurementsArgs) (*ProcurementPage, error) {
	ps, cp := int(args.PageSize), int(args.CurrentPage)
	if ps <= 0 {
		ps = 20
	}
	if cp <= 0 {
		cp = 1
	}
	rows, total, err := procurementRepo.NewProcurementRepository(r.DB).ListPage(ps, cp, args.Approved)
	if err != nil {
		return nil, err
	}
	page := &ProcurementPage{
		Items:       make([]Procurement, 0, len(rows)),
		TotalCount:  int32(total),
		PageSize:    int32(ps),
		CurrentPage: int32(cp),
	}
	for _, p := range rows {
		page.Items = append(page.Items, toProcurement(p))
	}
	return page, nil
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *RootResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	res, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	s := string(payload)
	return &s, nil
}

func toProcurement(p procurementEntity.Procurement) Procurement {
	out := Procurement{
		ProcurementID: idFromUint(p.ProcurementID),
		MaterialID:    idFromUint(p.MaterialID),
		VendorID:      idFromUint(p.VendorID),
		Quantity:      p.Quantity,
		ProcuredOn:    time.Time(p.ProcuredOn).Format("2006-01-02"),
		Approved:      p.Approved,
		CreatedBy:     p.CreatedBy,
	}
	if p.RatePerUnit.Valid {
		s := p.RatePerUnit.Decimal.StringFixed(2)
		out.RatePerUnit = &s
	}
	if p.TotalPrice.Valid {
		s := p.TotalPrice.Decimal.StringFixed(2)
		out.TotalPrice = &s
	}
	return out
}

func idFromUint(v uint) gql.ID {
	return gql.ID(strconv.FormatUint(uint64(v), 10))
}

// NewHandler parses the schema (base + extensions) and returns the /graphql handler.
func NewHandler(db *gorm.DB) echo.HandlerFunc {
	schema := gql.MustParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
	return echo.WrapHandler(&relay.Handler{Schema: schema})
}
