package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Work order day lookups during expansion and applicability resolution
		{"work_order_days", "idx_work_order_days_work_order_id", "work_order_id"},
		{"work_order_days", "idx_work_order_days_day_number", "work_order_id, day_number"},

		// Link tables read by the applicability resolver
		{"work_order_day_services", "idx_day_services_day_id", "work_order_day_id"},
		{"work_order_day_task_templates", "idx_day_task_templates_day_id", "work_order_day_id"},
		{"service_task_templates", "idx_service_task_templates_service_id", "service_id"},
		{"service_task_dependencies", "idx_service_task_dependencies_service_id", "service_id"},

		// Materializer idempotency check: day + user, filtered by origin key
		{"task_instances", "idx_task_instances_day_user", "work_order_day_id, user_id"},

		// Assignment fan-out
		{"day_assignments", "idx_day_assignments_day_id", "work_order_day_id"},
		{"day_assignments", "idx_day_assignments_user_id", "user_id"},

		// Field responses per instance
		{"field_responses", "idx_field_responses_instance_id", "task_instance_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
