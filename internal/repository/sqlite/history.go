package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

const maxLimit = 100

// HistoryRepository stores successful lookups.
type HistoryRepository struct {
	DB  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

func NewHistoryRepository(db *sql.DB, logger zerolog.Logger) *HistoryRepository {
	logger = logger.With().Str("component", "HistoryRepository").Logger()
	return &HistoryRepository{DB: db, log: logger, now: time.Now}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 1
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Record inserts one lookup.
func (r *HistoryRepository) Record(ctx context.Context, query string, loc models.Location) error {
	start := time.Now()
	query = strings.TrimSpace(query)

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO lookup_history (query, display, latitude, longitude, looked_up_at)
		 VALUES (?, ?, ?, ?, ?)`,
		query, loc.Display, loc.Latitude, loc.Longitude, r.now().UTC(),
	)
	dur := time.Since(start)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).
			Str("query", query).
			Dur("duration", dur).
			Msg("failed to insert lookup history")
		return err
	}

	r.log.Debug().Ctx(ctx).
		Str("query", query).
		Str("display", loc.Display).
		Dur("duration", dur).
		Msg("lookup recorded")
	return nil
}

// Recent returns the latest lookups, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, query, display, latitude, longitude, looked_up_at
		   FROM lookup_history
		  ORDER BY id DESC
		  LIMIT ?`, clampLimit(limit),
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query lookup history")
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			r.log.Error().Err(cerr).Msg("failed to close rows")
		}
	}()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Display, &e.Latitude, &e.Longitude, &e.LookedUpAt); err != nil {
			r.log.Error().Err(err).Ctx(ctx).Msg("failed to scan lookup history row")
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentCities returns distinct queries of the latest lookups, newest first.
// Queries differing only in case collapse to the most recent spelling.
func (r *HistoryRepository) RecentCities(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT query, MAX(id)
		   FROM lookup_history
		  GROUP BY lower(query)
		  ORDER BY MAX(id) DESC
		  LIMIT ?`, clampLimit(limit),
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query recent cities")
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			r.log.Error().Err(cerr).Msg("failed to close rows")
		}
	}()

	cities := make([]string, 0)
	for rows.Next() {
		var (
			city string
			id   int64
		)
		if err := rows.Scan(&city, &id); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}
