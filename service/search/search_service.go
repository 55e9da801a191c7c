package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	catalogEntity "brickyard.GO/model/entity/catalog"
	procurementEntity "brickyard.GO/model/entity/procurement"
	catalogRepo "brickyard.GO/model/repository/catalog"
	procurementRepo "brickyard.GO/model/repository/procurement"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService indexes approved procurements into Elasticsearch for the
// admin's free-text history search. Optional: without ELASTICSEARCH_HOST the
// service stays disabled and callers get a clean error.
type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "brickyard_procurements"
	}
	if host == "" {
		return &SearchService{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}
	return &SearchService{client: client, index: index}
}

// Enabled reports whether an ES client is configured.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

type procurementDoc struct {
	ProcurementID uint    `json:"procurement_id"`
	MaterialKind  string  `json:"material_kind"`
	MaterialName  string  `json:"material_name"`
	VendorID      uint    `json:"vendor_id"`
	Quantity      float64 `json:"quantity"`
	TotalPrice    string  `json:"total_price"`
	ProcuredOn    string  `json:"procured_on"`
	CreatedBy     string  `json:"created_by"`
}

// IndexProcurement writes one approved procurement document. Best effort:
// callers treat indexing failures as non-fatal to the approval itself.
func (s *SearchService) IndexProcurement(ctx context.Context, p *procurementEntity.Procurement, m *catalogEntity.Material) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	doc := procurementDoc{
		ProcurementID: p.ProcurementID,
		MaterialKind:  string(m.Kind),
		MaterialName:  m.Name,
		VendorID:      p.VendorID,
		Quantity:      p.Quantity,
		ProcuredOn:    time.Time(p.ProcuredOn).Format("2006-01-02"),
		CreatedBy:     p.CreatedBy,
	}
	if p.TotalPrice.Valid {
		doc.TotalPrice = p.TotalPrice.Decimal.StringFixed(2)
	}
	body, _ := json.Marshal(doc)
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ProcurementID), 10)),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch index: %s", res.String())
	}
	return nil
}

// Search runs a free-text query over indexed procurements.
func (s *SearchService) Search(ctx context.Context, query string, size int) ([]procurementDoc, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}
	if size <= 0 {
		size = 20
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"material_name^3", "material_kind^2", "created_by"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source procurementDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]procurementDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// Reindex pushes all approved procurements from the last year into the index.
// Run by the nightly cron job.
func (s *SearchService) Reindex(ctx context.Context, db *gorm.DB) (int, error) {
	if s.client == nil {
		return 0, fmt.Errorf("elasticsearch not configured")
	}
	materials, err := catalogRepo.NewMaterialRepository(db).List()
	if err != nil {
		return 0, err
	}
	byID := make(map[uint]catalogEntity.Material, len(materials))
	for _, m := range materials {
		byID[m.MaterialID] = m
	}

	now := time.Now()
	procs, err := procurementRepo.NewProcurementRepository(db).
		ListByDateRange(now.AddDate(-1, 0, 0), now, true)
	if err != nil {
		return 0, err
	}
	indexed := 0
	for i := range procs {
		m, ok := byID[procs[i].MaterialID]
		if !ok {
			continue
		}
		if err := s.IndexProcurement(ctx, &procs[i], &m); err != nil {
			return indexed, err
		}
		indexed++
	}
	return indexed, nil
}
