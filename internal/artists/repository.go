package artists

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagelist/backend/internal/models"
)

// ErrNotFound is returned when an artist id does not exist.
var ErrNotFound = errors.New("artist not found")

// Repository handles artist persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an artist repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new artist inside a transaction. On success the
// artist's id and timestamps are populated.
func (r *Repository) Create(ctx context.Context, a *models.Artist) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO artists (name, city, state, phone, genres, website, image_link, facebook_link, seeking_venue, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres,
		a.Website, a.ImageLink, a.FacebookLink, a.SeekingVenue, a.SeekingDescription).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID returns an artist by id, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Artist, error) {
	const q = `SELECT id, name, city, state, phone, genres, website, image_link, facebook_link, seeking_venue, seeking_description, created_at, updated_at
		FROM artists WHERE id = $1`
	var a models.Artist
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres,
		&a.Website, &a.ImageLink, &a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update overwrites every mutable column of an artist from a inside a
// transaction. The id column is never part of the SET list.
func (r *Repository) Update(ctx context.Context, a *models.Artist) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `UPDATE artists
		SET name = $1, city = $2, state = $3, phone = $4, genres = $5,
		    website = $6, image_link = $7, facebook_link = $8,
		    seeking_venue = $9, seeking_description = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING created_at, updated_at`
	err = tx.QueryRow(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres,
		a.Website, a.ImageLink, a.FacebookLink, a.SeekingVenue, a.SeekingDescription,
		a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes an artist inside a transaction; the shows foreign key
// cascades so the artist's shows are removed with it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// ListAll returns every artist in creation order with its upcoming-show
// count.
func (r *Repository) ListAll(ctx context.Context, now time.Time) ([]models.ArtistSummary, error) {
	const q = `SELECT a.id, a.name,
			COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		GROUP BY a.id
		ORDER BY a.id`
	rows, err := r.pool.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// SearchByName returns artists whose name contains term,
// case-insensitively, each with its upcoming-show count.
func (r *Repository) SearchByName(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	const q = `SELECT a.id, a.name,
			COUNT(s.id) FILTER (WHERE s.start_time >= $2) AS num_upcoming
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		WHERE a.name ILIKE '%' || $1 || '%'
		GROUP BY a.id
		ORDER BY a.id`
	rows, err := r.pool.Query(ctx, q, term, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func scanSummaries(rows pgx.Rows) ([]models.ArtistSummary, error) {
	var list []models.ArtistSummary
	for rows.Next() {
		var (
			sum      models.ArtistSummary
			upcoming int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &upcoming); err != nil {
			return nil, err
		}
		sum.NumUpcomingShows = int(upcoming)
		list = append(list, sum)
	}
	return list, rows.Err()
}
