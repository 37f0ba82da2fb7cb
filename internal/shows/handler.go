package shows

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stagelist/backend/internal/forms"
	"github.com/stagelist/backend/internal/models"
	"github.com/stagelist/backend/pkg/response"
)

// Store is the show persistence surface the handler needs.
type Store interface {
	Create(ctx context.Context, s *models.Show) error
	ListAll(ctx context.Context) ([]models.ShowListing, error)
}

// Handler handles show HTTP endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a show handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List handles GET /shows: a flat chronological listing of every show.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list shows", zap.Error(err))
		response.Internal(c, "failed to list shows")
		return
	}
	response.OK(c, list)
}

// NewForm handles GET /shows/create: the blank form descriptor.
func (h *Handler) NewForm(c *gin.Context) {
	response.OK(c, gin.H{
		"fields":            []string{"venue_id", "artist_id", "start_time"},
		"start_time_format": "2006-01-02 15:04:05",
	})
}

// Create handles POST /shows/create. Referential integrity is enforced by
// the foreign keys at persistence time, not at the form layer.
func (h *Handler) Create(c *gin.Context) {
	var f forms.ShowForm
	if err := c.ShouldBind(&f); err != nil {
		response.BadRequest(c, "invalid form data: "+err.Error())
		return
	}
	if fields := forms.Validate(&f); fields != nil {
		response.ValidationFailed(c, fields, forms.InvalidNotice(fields))
		return
	}

	show := &models.Show{
		VenueID:   f.VenueID,
		ArtistID:  f.ArtistID,
		StartTime: f.StartTime,
	}
	if err := h.store.Create(c.Request.Context(), show); err != nil {
		if IsForeignKeyViolation(err) {
			h.logger.Warn("create show: unknown venue or artist",
				zap.Int64("venue_id", f.VenueID),
				zap.Int64("artist_id", f.ArtistID))
		} else {
			h.logger.Error("create show", zap.Error(err))
		}
		response.Internal(c, "An error occurred. Show could not be listed.")
		return
	}
	response.CreatedWithMessage(c, show, "Show was successfully listed!")
}
