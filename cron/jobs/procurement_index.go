package jobs

import (
	"context"
	"log"
	"time"

	searchService "brickyard.GO/service/search"
)

// ProcurementIndexJob reindexes approved procurements into Elasticsearch.
// No-op when ELASTICSEARCH_HOST is unset.
func ProcurementIndexJob(args ...string) {
	svc := searchService.GetSearchService()
	if !svc.Enabled() {
		return
	}

	db, err := openDB()
	if err != nil {
		log.Printf("[cron] procurementindex: db: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := svc.Reindex(ctx, db)
	if err != nil {
		log.Printf("[cron] procurementindex: %v", err)
		return
	}
	log.Printf("[cron] procurementindex: indexed %d procurements", n)
}
