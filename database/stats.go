package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// EventUsage is the stored footprint of one event's photos.
type EventUsage struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	Photos    int64  `json:"photos"`
	Bytes     int64  `json:"bytes"`
}

// StorageStats summarizes how much original-photo data the deployment holds.
// Variant bytes (previews, thumbnails) are derived data and not counted.
type StorageStats struct {
	TotalPhotos int64        `json:"total_photos"`
	TotalBytes  int64        `json:"total_bytes"`
	Events      []EventUsage `json:"events"`
}

// CollectStorageStats aggregates photo counts and byte usage, overall and per
// event.
func CollectStorageStats(db *sql.DB) (*StorageStats, error) {
	stats := &StorageStats{Events: []EventUsage{}}

	totalQuery, totalArgs, err := psql.
		Select("COUNT(*)", "COALESCE(SUM(file_size), 0)").
		From("photos").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build totals query: %w", err)
	}
	err = db.QueryRow(totalQuery, totalArgs...).Scan(&stats.TotalPhotos, &stats.TotalBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to query photo totals: %w", err)
	}

	perEventQuery, perEventArgs, err := psql.
		Select("events.id", "events.name", "COUNT(photos.id)", "COALESCE(SUM(photos.file_size), 0)").
		From("events").
		LeftJoin("photos ON photos.event_id = events.id").
		GroupBy("events.id", "events.name").
		OrderBy("events.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build per-event query: %w", err)
	}

	rows, err := db.Query(perEventQuery, perEventArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query per-event usage: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var usage EventUsage
		if err := rows.Scan(&usage.EventID, &usage.EventName, &usage.Photos, &usage.Bytes); err != nil {
			return nil, fmt.Errorf("failed to scan event usage row: %w", err)
		}
		stats.Events = append(stats.Events, usage)
	}
	return stats, rows.Err()
}
