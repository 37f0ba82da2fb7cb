package artists

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stagelist/backend/internal/models"
	"github.com/stagelist/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	artists map[int64]*models.Artist
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{artists: make(map[int64]*models.Artist)}
}

func (s *fakeStore) Create(_ context.Context, a *models.Artist) error {
	s.nextID++
	a.ID = s.nextID
	cp := *a
	s.artists[a.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*models.Artist, error) {
	a, ok := s.artists[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeStore) Update(_ context.Context, a *models.Artist) error {
	if _, ok := s.artists[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	s.artists[a.ID] = &cp
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.artists[id]; !ok {
		return ErrNotFound
	}
	delete(s.artists, id)
	return nil
}

func (s *fakeStore) ListAll(_ context.Context, _ time.Time) ([]models.ArtistSummary, error) {
	var list []models.ArtistSummary
	for id := int64(1); id <= s.nextID; id++ {
		if a, ok := s.artists[id]; ok {
			list = append(list, models.ArtistSummary{ID: a.ID, Name: a.Name})
		}
	}
	return list, nil
}

func (s *fakeStore) SearchByName(_ context.Context, term string, _ time.Time) ([]models.ArtistSummary, error) {
	var list []models.ArtistSummary
	for id := int64(1); id <= s.nextID; id++ {
		a, ok := s.artists[id]
		if ok && strings.Contains(strings.ToLower(a.Name), strings.ToLower(term)) {
			list = append(list, models.ArtistSummary{ID: a.ID, Name: a.Name})
		}
	}
	return list, nil
}

type fakeSchedule struct {
	byArtist map[int64][]models.ArtistShow
}

func (s *fakeSchedule) ListForArtist(_ context.Context, artistID int64) ([]models.ArtistShow, error) {
	return s.byArtist[artistID], nil
}

func newRouter(store *fakeStore, schedule *fakeSchedule) *gin.Engine {
	if schedule == nil {
		schedule = &fakeSchedule{byArtist: make(map[int64][]models.ArtistShow)}
	}
	h := NewHandler(store, schedule, zap.NewNop())
	r := gin.New()
	r.GET("/artists", h.List)
	r.POST("/artists/search", h.Search)
	r.GET("/artists/create", h.NewForm)
	r.POST("/artists/create", h.Create)
	r.GET("/artists/:id", h.GetByID)
	r.POST("/artists/:id/edit", h.Edit)
	r.DELETE("/artists/:id", h.Delete)
	return r
}

func doForm(r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func gunsNPetalsForm() url.Values {
	return url.Values{
		"name":   {"Guns N Petals"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"phone":  {"326-123-5000"},
		"genres": {"Rock n Roll"},
	}
}

func TestCreateArtist(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, nil)

	w := doForm(r, http.MethodPost, "/artists/create", gunsNPetalsForm())

	require.Equal(t, http.StatusCreated, w.Code)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Artist Guns N Petals was successfully listed!", body.Message)
	require.Len(t, store.artists, 1)
	assert.Equal(t, "326-123-5000", store.artists[1].Phone)
}

func TestCreateArtistInvalidRejectedWithoutWrite(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, nil)

	form := gunsNPetalsForm()
	form.Del("name")
	form.Set("genres", "Polka")
	w := doForm(r, http.MethodPost, "/artists/create", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "genres")
	assert.Empty(t, store.artists)
}

func TestArtistDetailPartitionsShows(t *testing.T) {
	store := newFakeStore()
	schedule := &fakeSchedule{byArtist: make(map[int64][]models.ArtistShow)}
	r := newRouter(store, schedule)

	require.Equal(t, http.StatusCreated, doForm(r, http.MethodPost, "/artists/create", gunsNPetalsForm()).Code)

	now := time.Now().UTC()
	schedule.byArtist[1] = []models.ArtistShow{
		{VenueID: 1, VenueName: "The Musical Hop", StartTime: now.Add(-72 * time.Hour)},
		{VenueID: 3, VenueName: "Park Square Live Music & Coffee", StartTime: now.Add(72 * time.Hour)},
	}

	w := doForm(r, http.MethodGet, "/artists/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body.Data.(map[string]any)
	assert.Equal(t, float64(1), data["past_shows_count"])
	assert.Equal(t, float64(1), data["upcoming_shows_count"])
}

func TestArtistDetailNotFound(t *testing.T) {
	r := newRouter(newFakeStore(), nil)
	w := doForm(r, http.MethodGet, "/artists/12", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchArtists(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, nil)

	for _, name := range []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"} {
		form := gunsNPetalsForm()
		form.Set("name", name)
		require.Equal(t, http.StatusCreated, doForm(r, http.MethodPost, "/artists/create", form).Code)
	}

	w := doForm(r, http.MethodPost, "/artists/search", url.Values{"search_term": {"band"}})
	require.Equal(t, http.StatusOK, w.Code)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body.Data.(map[string]any)
	assert.Equal(t, float64(1), data["count"])

	w = doForm(r, http.MethodPost, "/artists/search", url.Values{"search_term": {"a"}})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data = body.Data.(map[string]any)
	assert.Equal(t, float64(3), data["count"])
}

func TestDeleteArtist(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, nil)
	require.Equal(t, http.StatusCreated, doForm(r, http.MethodPost, "/artists/create", gunsNPetalsForm()).Code)

	w := doForm(r, http.MethodDelete, "/artists/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.artists)

	w = doForm(r, http.MethodDelete, "/artists/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
