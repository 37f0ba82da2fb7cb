package shows

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagelist/backend/internal/models"
)

// Repository handles show persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a show repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new show inside a transaction. Venue and artist ids are
// not pre-checked; a dangling reference fails the foreign-key constraint
// and rolls the transaction back.
func (r *Repository) Create(ctx context.Context, s *models.Show) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO shows (venue_id, artist_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	if err := tx.QueryRow(ctx, q, s.VenueID, s.ArtistID, s.StartTime).Scan(&s.ID, &s.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListAll returns every show in chronological order with denormalized
// venue and artist display fields.
func (r *Repository) ListAll(ctx context.Context) ([]models.ShowListing, error) {
	const q = `SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.ShowListing
	for rows.Next() {
		var l models.ShowListing
		if err := rows.Scan(&l.VenueID, &l.VenueName, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &l.StartTime); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ListForVenue returns the shows booked at a venue with the artist side of
// each join, ordered by start time.
func (r *Repository) ListForVenue(ctx context.Context, venueID int64) ([]models.VenueShow, error) {
	const q = `SELECT s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = $1
		ORDER BY s.start_time`
	rows, err := r.pool.Query(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.VenueShow
	for rows.Next() {
		var e models.VenueShow
		if err := rows.Scan(&e.ArtistID, &e.ArtistName, &e.ArtistImageLink, &e.StartTime); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListForArtist returns the shows an artist plays with the venue side of
// each join, ordered by start time.
func (r *Repository) ListForArtist(ctx context.Context, artistID int64) ([]models.ArtistShow, error) {
	const q = `SELECT s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = $1
		ORDER BY s.start_time`
	rows, err := r.pool.Query(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.ArtistShow
	for rows.Next() {
		var e models.ArtistShow
		if err := rows.Scan(&e.VenueID, &e.VenueName, &e.VenueImageLink, &e.StartTime); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// constraint violation (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
