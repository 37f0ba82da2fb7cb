package venues

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

// Store is the venue persistence surface the handler needs.
type Store interface {
	Create(ctx context.Context, v *models.Venue) error
	GetByID(ctx context.Context, id int64) (*models.Venue, error)
	Update(ctx context.Context, v *models.Venue) error
	Delete(ctx context.Context, id int64) error
	ListGroups(ctx context.Context, now time.Time) ([]models.CityGroup, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error)
}

// ScheduleStore supplies the shows booked at a venue.
type ScheduleStore interface {
	ListForVenue(ctx context.Context, venueID int64) ([]models.VenueShow, error)
}

// Handler handles venue HTTP endpoints.
type Handler struct {
	store    Store
	schedule ScheduleStore
	logger   *zap.Logger
}

// NewHandler creates a venue handler.
func NewHandler(store Store, schedule ScheduleStore, logger *zap.Logger) *Handler {
	return &Handler{store: store, schedule: schedule, logger: logger}
}

// List handles GET /venues: venues grouped by city and state, each with
// its upcoming-show count.
func (h *Handler) List(c *gin.Context) {
	groups, err := h.store.ListGroups(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("list venues", zap.Error(err))
		response.Internal(c, "failed to list venues")
		return
	}
	response.OK(c, groups)
}

// Search handles POST /venues/search: case-insensitive substring match on
// the venue name.
func (h *Handler) Search(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := h.store.SearchByName(c.Request.Context(), term, time.Now().UTC())
	if err != nil {
		h.logger.Error("search venues", zap.Error(err))
		response.Internal(c, "failed to search venues")
		return
	}
	response.OK(c, gin.H{
		"count":       len(results),
		"data":        results,
		"search_term": term,
	})
}

// GetByID handles GET /venues/:id: the venue with its shows partitioned
// into past and upcoming around a single request instant.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	venue, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "venue not found")
		return
	}
	if err != nil {
		h.logger.Error("get venue", zap.Error(err))
		response.Internal(c, "failed to load venue")
		return
	}

	entries, err := h.schedule.ListForVenue(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("venue shows", zap.Error(err))
		response.Internal(c, "failed to load venue")
		return
	}
	now := time.Now().UTC()
	past, upcoming := shows.SplitByTime(entries, func(e models.VenueShow) time.Time { return e.StartTime }, now)

	response.OK(c, models.VenueDetail{
		Venue:              *venue,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

// NewForm handles GET /venues/create: the blank form descriptor with the
// accepted vocabularies.
func (h *Handler) NewForm(c *gin.Context) {
	response.OK(c, gin.H{
		"states": forms.States,
		"genres": forms.Genres,
	})
}

// Create handles POST /venues/create.
func (h *Handler) Create(c *gin.Context) {
	var f forms.VenueForm
	if err := c.ShouldBind(&f); err != nil {
		response.BadRequest(c, "invalid form data: "+err.Error())
		return
	}
	if fields := forms.Validate(&f); fields != nil {
		response.ValidationFailed(c, fields, forms.InvalidNotice(fields))
		return
	}

	venue := venueFromForm(&f)
	if err := h.store.Create(c.Request.Context(), venue); err != nil {
		h.logger.Error("create venue", zap.Error(err))
		response.Internal(c, "An error occurred. Venue "+f.Name+" could not be listed.")
		return
	}
	response.CreatedWithMessage(c, venue, "Venue "+venue.Name+" was successfully listed!")
}

// EditForm handles GET /venues/:id/edit: current values for pre-populating
// the edit form.
func (h *Handler) EditForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	venue, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "venue not found")
		return
	}
	if err != nil {
		h.logger.Error("get venue", zap.Error(err))
		response.Internal(c, "failed to load venue")
		return
	}
	response.OK(c, venue)
}

// Edit handles POST /venues/:id/edit: every mutable field is overwritten
// from the submitted values.
func (h *Handler) Edit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	var f forms.VenueForm
	if err := c.ShouldBind(&f); err != nil {
		response.BadRequest(c, "invalid form data: "+err.Error())
		return
	}
	if fields := forms.Validate(&f); fields != nil {
		response.ValidationFailed(c, fields, forms.InvalidNotice(fields))
		return
	}

	venue := venueFromForm(&f)
	venue.ID = id
	err = h.store.Update(c.Request.Context(), venue)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "venue not found")
		return
	}
	if err != nil {
		h.logger.Error("update venue", zap.Error(err))
		response.Internal(c, "An error occurred. Venue "+f.Name+" could not be updated.")
		return
	}
	response.OKWithMessage(c, venue, "Venue "+venue.Name+" was successfully updated!")
}

// Delete handles DELETE /venues/:id; dependent shows are removed by the
// cascade.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid venue id")
		return
	}
	venue, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "venue not found")
		return
	}
	if err != nil {
		h.logger.Error("get venue", zap.Error(err))
		response.Internal(c, "failed to load venue")
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete venue", zap.Error(err))
		response.Internal(c, "An error occurred. Venue "+venue.Name+" could not be deleted.")
		return
	}
	response.OKWithMessage(c, nil, "Venue "+venue.Name+" was successfully deleted.")
}

// venueFromForm builds the record from validated form values; the phone is
// normalized to NNN-NNN-NNNN after validation succeeds.
func venueFromForm(f *forms.VenueForm) *models.Venue {
	return &models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              forms.NormalizePhone(f.Phone),
		Genres:             f.Genres,
		Website:            f.Website,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}
