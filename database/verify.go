package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/arenahub/event-dashboard-backend/internal/apperrors"
)

// requiredEventColumns is the full column set of the events table. Startup
// refuses to serve traffic when any of these are absent, instead of letting
// the first query fail and guessing schema drift from its error text.
var requiredEventColumns = []string{
	"id",
	"name",
	"description",
	"start_date",
	"end_date",
	"location",
	"category",
	"sub_category",
	"status",
	"tickets_sold",
	"total_revenue",
	"unique_attendees",
	"image_url",
	"logo_url",
	"policy",
	"organizer",
	"organizer_logo",
	"teams",
	"tags",
	"timezone",
	"nft_mint_address",
	"created_at",
	"updated_at",
}

// VerifySchema compares the live catalog against the expected events table
// layout and fails fast on drift.
func VerifySchema(db *gorm.DB) error {
	var tableExists bool
	err := db.Raw(`SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = 'events'
	)`).Scan(&tableExists).Error
	if err != nil {
		return apperrors.ClassifyPostgres(err)
	}
	if !tableExists {
		return fmt.Errorf("%w: table \"events\" does not exist, run the migrations", apperrors.ErrSchemaDrift)
	}

	var actual []string
	err = db.Raw(`SELECT column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = 'events'`).Scan(&actual).Error
	if err != nil {
		return apperrors.ClassifyPostgres(err)
	}

	present := make(map[string]bool, len(actual))
	for _, c := range actual {
		present[c] = true
	}

	var missing []string
	for _, c := range requiredEventColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: events table is missing columns [%s], run the migrations against this database",
			apperrors.ErrSchemaDrift, strings.Join(missing, ", "))
	}

	log.Println("✅ Schema verification passed")
	return nil
}
