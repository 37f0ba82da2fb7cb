package artists

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagelist/backend/internal/forms"
	"github.com/stagelist/backend/internal/models"
	"github.com/stagelist/backend/internal/shows"
	"github.com/stagelist/backend/pkg/response"
)

// Store is the artist persistence surface the handler needs.
type Store interface {
	Create(ctx context.Context, a *models.Artist) error
	GetByID(ctx context.Context, id int64) (*models.Artist, error)
	Update(ctx context.Context, a *models.Artist) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, now time.Time) ([]models.ArtistSummary, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error)
}

// ScheduleStore supplies the shows an artist plays.
type ScheduleStore interface {
	ListForArtist(ctx context.Context, artistID int64) ([]models.ArtistShow, error)
}

// Handler handles artist HTTP endpoints.
type Handler struct {
	store    Store
	schedule ScheduleStore
	logger   *zap.Logger
}

// NewHandler creates an artist handler.
func NewHandler(store Store, schedule ScheduleStore, logger *zap.Logger) *Handler {
	return &Handler{store: store, schedule: schedule, logger: logger}
}

// List handles GET /artists: a flat listing in creation order.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.ListAll(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("list artists", zap.Error(err))
		response.Internal(c, "failed to list artists")
		return
	}
	response.OK(c, list)
}

// Search handles POST /artists/search: case-insensitive substring match on
// the artist name.
func (h *Handler) Search(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := h.store.SearchByName(c.Request.Context(), term, time.Now().UTC())
	if err != nil {
		h.logger.Error("search artists", zap.Error(err))
		response.Internal(c, "failed to search artists")
		return
	}
	response.OK(c, gin.H{
		"count":       len(results),
		"data":        results,
		"search_term": term,
	})
}

// GetByID handles GET /artists/:id: the artist with its shows partitioned
// into past and upcoming around a single request instant.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid artist id")
		return
	}
	artist, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "artist not found")
		return
	}
	if err != nil {
		h.logger.Error("get artist", zap.Error(err))
		response.Internal(c, "failed to load artist")
		return
	}

	entries, err := h.schedule.ListForArtist(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("artist shows", zap.Error(err))
		response.Internal(c, "failed to load artist")
		return
	}
	now := time.Now().UTC()
	past, upcoming := shows.SplitByTime(entries, func(e models.ArtistShow) time.Time { return e.StartTime }, now)

	response.OK(c, models.ArtistDetail{
		Artist:             *artist,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// NewForm handles GET /artists/create: the blank form descriptor with the
// accepted vocabularies.
func (h *Handler) NewForm(c *gin.Context) {
	response.OK(c, gin.H{
		"states": forms.States,
		"genres": forms.Genres,
	})
}

// Create handles POST /artists/create.
func (h *Handler) Create(c *gin.Context) {
	var f forms.ArtistForm
	if err := c.ShouldBind(&f); err != nil {
		response.BadRequest(c, "invalid form data: "+err.Error())
		return
	}
	if fields := forms.Validate(&f); fields != nil {
		response.ValidationFailed(c, fields, forms.InvalidNotice(fields))
		return
	}

	artist := artistFromForm(&f)
	if err := h.store.Create(c.Request.Context(), artist); err != nil {
		h.logger.Error("create artist", zap.Error(err))
		response.Internal(c, "An error occurred. Artist "+f.Name+" could not be listed.")
		return
	}
	response.CreatedWithMessage(c, artist, "Artist "+artist.Name+" was successfully listed!")
}

// EditForm handles GET /artists/:id/edit: current values for
// pre-populating the edit form.
func (h *Handler) EditForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid artist id")
		return
	}
	artist, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "artist not found")
		return
	}
	if err != nil {
		h.logger.Error("get artist", zap.Error(err))
		response.Internal(c, "failed to load artist")
		return
	}
	response.OK(c, artist)
}

// Edit handles POST /artists/:id/edit: every mutable field is overwritten
// from the submitted values.
func (h *Handler) Edit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid artist id")
		return
	}
	var f forms.ArtistForm
	if err := c.ShouldBind(&f); err != nil {
		response.BadRequest(c, "invalid form data: "+err.Error())
		return
	}
	if fields := forms.Validate(&f); fields != nil {
		response.ValidationFailed(c, fields, forms.InvalidNotice(fields))
		return
	}

	artist := artistFromForm(&f)
	artist.ID = id
	err = h.store.Update(c.Request.Context(), artist)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "artist not found")
		return
	}
	if err != nil {
		h.logger.Error("update artist", zap.Error(err))
		response.Internal(c, "An error occurred. Artist "+f.Name+" could not be updated.")
		return
	}
	response.OKWithMessage(c, artist, "Artist "+artist.Name+" was successfully updated!")
}

// Delete handles DELETE /artists/:id; dependent shows are removed by the
// cascade.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid artist id")
		return
	}
	artist, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "artist not found")
		return
	}
	if err != nil {
		h.logger.Error("get artist", zap.Error(err))
		response.Internal(c, "failed to load artist")
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete artist", zap.Error(err))
		response.Internal(c, "An error occurred. Artist "+artist.Name+" could not be deleted.")
		return
	}
	response.OKWithMessage(c, nil, "Artist "+artist.Name+" was successfully deleted.")
}

// artistFromForm builds the record from validated form values; the phone
// is normalized to NNN-NNN-NNNN after validation succeeds.
func artistFromForm(f *forms.ArtistForm) *models.Artist {
	return &models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              forms.NormalizePhone(f.Phone),
		Genres:             f.Genres,
		Website:            f.Website,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}
