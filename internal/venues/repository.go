package venues

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagelist/backend/internal/models"
)

// ErrNotFound is returned when a venue id does not exist.
var ErrNotFound = errors.New("venue not found")

// Repository handles venue persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a venue repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new venue inside a transaction. On success the venue's
// id and timestamps are populated.
func (r *Repository) Create(ctx context.Context, v *models.Venue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO venues (name, city, state, address, phone, genres, website, image_link, facebook_link, seeking_talent, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
		v.Website, v.ImageLink, v.FacebookLink, v.SeekingTalent, v.SeekingDescription).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID returns a venue by id, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	const q = `SELECT id, name, city, state, address, phone, genres, website, image_link, facebook_link, seeking_talent, seeking_description, created_at, updated_at
		FROM venues WHERE id = $1`
	var v models.Venue
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.Genres,
		&v.Website, &v.ImageLink, &v.FacebookLink, &v.SeekingTalent, &v.SeekingDescription,
		&v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update overwrites every mutable column of a venue from v inside a
// transaction. The id column is never part of the SET list.
func (r *Repository) Update(ctx context.Context, v *models.Venue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `UPDATE venues
		SET name = $1, city = $2, state = $3, address = $4, phone = $5, genres = $6,
		    website = $7, image_link = $8, facebook_link = $9,
		    seeking_talent = $10, seeking_description = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING created_at, updated_at`
	err = tx.QueryRow(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
		v.Website, v.ImageLink, v.FacebookLink, v.SeekingTalent, v.SeekingDescription,
		v.ID).Scan(&v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a venue inside a transaction; the shows foreign key
// cascades so the venue's shows are removed with it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// ListGroups returns every venue grouped by (city, state) in first-seen
// order, each with the count of shows starting at or after now. Venues
// within a group keep creation (id) order.
func (r *Repository) ListGroups(ctx context.Context, now time.Time) ([]models.CityGroup, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
			COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		GROUP BY v.id
		ORDER BY v.id`
	rows, err := r.pool.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.CityGroup
	index := make(map[[2]string]int)
	for rows.Next() {
		var (
			sum         models.VenueSummary
			city, state string
			upcoming    int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &city, &state, &upcoming); err != nil {
			return nil, err
		}
		sum.NumUpcomingShows = int(upcoming)

		key := [2]string{city, state}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.CityGroup{City: city, State: state})
		}
		groups[i].Venues = append(groups[i].Venues, sum)
	}
	return groups, rows.Err()
}

// SearchByName returns venues whose name contains term, case-insensitively,
// each with its upcoming-show count.
func (r *Repository) SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	const q = `SELECT v.id, v.name,
			COUNT(s.id) FILTER (WHERE s.start_time >= $2) AS num_upcoming
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.name ILIKE '%' || $1 || '%'
		GROUP BY v.id
		ORDER BY v.id`
	rows, err := r.pool.Query(ctx, q, term, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.VenueSummary
	for rows.Next() {
		var (
			sum      models.VenueSummary
			upcoming int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &upcoming); err != nil {
			return nil, err
		}
		sum.NumUpcomingShows = int(upcoming)
		results = append(results, sum)
	}
	return results, rows.Err()
}
