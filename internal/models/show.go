package models

import "time"

// Show links one artist to one venue at a specific instant. Shows are
// immutable once created; they disappear only when a parent is deleted.
type Show struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
	CreatedAt time.Time `json:"created_at"`
}

// VenueShow is a show as seen from a venue page: the artist side of the join.
type VenueShow struct {
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link,omitempty"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show as seen from an artist page: the venue side of the join.
type ArtistShow struct {
	VenueID        int64     `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link,omitempty"`
	StartTime      time.Time `json:"start_time"`
}

// ShowListing is one row of the flat show listing with denormalized names.
type ShowListing struct {
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link,omitempty"`
	StartTime       time.Time `json:"start_time"`
}
