package server

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database/dbtest"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/store"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2030, time.June, 1, 20, 0, 0, 0, time.UTC)

type app struct {
	t       *testing.T
	router  *gin.Engine
	db      *gorm.DB
	store   *store.Store
	cookies []*http.Cookie
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	st := store.New(db, store.WithClock(func() time.Time { return now }))
	cfg := &config.Config{CORSOrigins: []string{"*"}}
	r, err := New(cfg, st, web.NewMemoryFlashStore(10*time.Minute), zerolog.Nop())
	require.NoError(t, err)

	return &app{t: t, router: r, db: db, store: st}
}

func (a *app) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		a.cookies = cookies
	}
	return w
}

func (a *app) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *app) post(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *app) postMultipart(path string, values url.Values) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, list := range values {
		for _, v := range list {
			require.NoError(a.t, mw.WriteField(key, v))
		}
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req)
}

func (a *app) countShows() int64 {
	var shows int64
	require.NoError(a.t, a.db.Model(&models.Show{}).Count(&shows).Error)
	return shows
}

func (a *app) venue(name string) *models.Venue {
	v := &models.Venue{Name: name, City: "San Francisco", State: "CA", Genres: models.Genres{"Jazz"}}
	require.NoError(a.t, a.store.CreateVenue(context.Background(), v))
	return v
}

func (a *app) artist(name string) *models.Artist {
	ar := &models.Artist{Name: name, City: "San Francisco", State: "CA", Genres: models.Genres{"Jazz"}}
	require.NoError(a.t, a.store.CreateArtist(context.Background(), ar))
	return ar
}

func venueForm(name string) url.Values {
	return url.Values{
		"name":   {name},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"phone":  {"415-346-6000"},
		"genres": {"Jazz"},
	}
}

func TestCreateVenueFlow(t *testing.T) {
	a := newApp(t)

	w := a.get("/venues/create")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="seeking_talent"`)

	w = a.post("/venues/create", venueForm("The Fillmore"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = a.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Venue The Fillmore was added successfully!")
	assert.Contains(t, w.Body.String(), "The Fillmore")

	// flash shows once
	w = a.get("/")
	assert.NotContains(t, w.Body.String(), "was added successfully")

	res, err := a.store.SearchVenues(context.Background(), "fillmore")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	v, err := a.store.Venue(context.Background(), res.Data[0].ID)
	require.NoError(t, err)
	assert.False(t, v.SeekingTalent)
	assert.Equal(t, models.Genres{"Jazz"}, v.Genres)
}

func TestCreateVenueInvalidForm(t *testing.T) {
	a := newApp(t)

	values := venueForm("")
	values.Set("phone", "nope")
	w := a.post("/venues/create", values)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required.")
	assert.Contains(t, w.Body.String(), "Invalid phone number")

	var count int64
	require.NoError(t, a.db.Model(&models.Venue{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVenueListingAndSearchPages(t *testing.T) {
	a := newApp(t)
	fillmore := a.venue("The Fillmore")
	ar := a.artist("Guns N Petals")
	require.NoError(t, a.store.CreateShow(context.Background(),
		&models.Show{VenueID: fillmore.ID, ArtistID: ar.ID, StartTime: now.Add(time.Hour)}))

	w := a.get("/venues")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "San Francisco, CA")
	assert.Contains(t, w.Body.String(), "1 upcoming shows")

	w = a.post("/venues/search", url.Values{"search_term": {"FILL"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `Number of search results for "FILL": 1`)
	assert.Contains(t, w.Body.String(), "/venues/")

	w = a.post("/artists/search", url.Values{"search_term": {""}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ": 1</h3>")
}

func TestDetailPages(t *testing.T) {
	a := newApp(t)
	v := a.venue("Park Square")
	ar := a.artist("The Wild Sax Band")
	require.NoError(t, a.store.CreateShow(context.Background(),
		&models.Show{VenueID: v.ID, ArtistID: ar.ID, StartTime: now.Add(-time.Hour)}))

	w := a.get("/venues/" + itoa(v.ID))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Park Square")
	assert.Contains(t, body, "0 Upcoming Shows")
	assert.Contains(t, body, "1 Past Show")
	assert.Contains(t, body, "The Wild Sax Band")

	w = a.get("/artists/" + itoa(ar.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Park Square")
}

func TestUnknownRecordsAre404(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/venues/999", "/artists/999", "/venues/999/edit", "/artists/abc", "/nowhere"} {
		w := a.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Not Found", path)
	}

	req := httptest.NewRequest(http.MethodDelete, "/venues/999", nil)
	assert.Equal(t, http.StatusNotFound, a.do(req).Code)
}

func TestEditVenueFlow(t *testing.T) {
	a := newApp(t)
	v := &models.Venue{Name: "Old Name", City: "San Francisco", State: "CA", Phone: "415-000-1234",
		Genres: models.Genres{"Jazz"}, SeekingTalent: true, SeekingDescription: "Bands wanted"}
	require.NoError(t, a.store.CreateVenue(context.Background(), v))

	w := a.get("/venues/" + itoa(v.ID) + "/edit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Old Name"`)
	assert.Contains(t, w.Body.String(), "checked")

	w = a.post("/venues/"+itoa(v.ID)+"/edit", venueForm("New Name"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/venues/"+itoa(v.ID), w.Header().Get("Location"))

	w = a.get("/venues/" + itoa(v.ID))
	assert.Contains(t, w.Body.String(), "New Name info was updated successfully!")

	got, err := a.store.Venue(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.False(t, got.SeekingTalent)
	assert.Empty(t, got.SeekingDescription)
}

func TestEditArtistPrefill(t *testing.T) {
	a := newApp(t)
	ar := a.artist("Matt Quevedo")

	w := a.get("/artists/" + itoa(ar.ID) + "/edit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Matt Quevedo"`)
	assert.Contains(t, w.Body.String(), `<option value="Jazz" selected>`)
}

func TestDeleteVenueFlow(t *testing.T) {
	a := newApp(t)
	v := a.venue("Doomed Hall")
	ar := a.artist("Matt Quevedo")
	require.NoError(t, a.store.CreateShow(context.Background(),
		&models.Show{VenueID: v.ID, ArtistID: ar.ID, StartTime: now.Add(time.Hour)}))

	w := a.do(httptest.NewRequest(http.MethodDelete, "/venues/"+itoa(v.ID), nil))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = a.get("/")
	assert.Contains(t, w.Body.String(), "Venue Doomed Hall was deleted successfully!")

	var shows int64
	require.NoError(t, a.db.Model(&models.Show{}).Count(&shows).Error)
	assert.Zero(t, shows)
	assert.Equal(t, http.StatusNotFound, a.get("/venues/"+itoa(v.ID)).Code)
}

func TestCreateShowFlow(t *testing.T) {
	a := newApp(t)
	v := a.venue("Park Square")
	ar := a.artist("The Wild Sax Band")

	w := a.get("/shows/create")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Park Square")

	w = a.post("/shows/create", url.Values{
		"artist_id":  {itoa(ar.ID)},
		"venue_id":   {itoa(v.ID)},
		"start_time": {"2035-04-01 20:00:00"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, a.get("/").Body.String(), "Show was successfully listed!")

	w = a.get("/shows")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Wild Sax Band")
	assert.Contains(t, w.Body.String(), "Sunday April, 1, 2035 at 8:00PM")
}

func TestCreateShowUnknownArtist(t *testing.T) {
	a := newApp(t)
	v := a.venue("Park Square")

	w := a.post("/shows/create", url.Values{
		"artist_id":  {"999"},
		"venue_id":   {itoa(v.ID)},
		"start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "An error occurred. Show could not be listed.")

	var shows int64
	require.NoError(t, a.db.Model(&models.Show{}).Count(&shows).Error)
	assert.Zero(t, shows)
}

func TestCreateArtistAndList(t *testing.T) {
	a := newApp(t)

	w := a.post("/artists/create", url.Values{
		"name":          {"Guns N Petals"},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"phone":         {"326-123-5000"},
		"genres":        {"Rock n Roll", "Punk"},
		"seeking_venue": {"y"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = a.get("/artists")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Artist Guns N Petals was successfully listed!")
	assert.Contains(t, w.Body.String(), "Guns N Petals</a>")

	artists, err := a.store.Artists(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 1)
	got, err := a.store.Artist(context.Background(), artists[0].ID)
	require.NoError(t, err)
	assert.True(t, got.SeekingVenue)
	assert.Equal(t, models.Genres{"Rock n Roll", "Punk"}, got.Genres)
}

func TestCreateVenueMultipartIsSanitized(t *testing.T) {
	a := newApp(t)

	w := a.postMultipart("/venues/create", venueForm("<b>Bold</b> Hall"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	res, err := a.store.SearchVenues(context.Background(), "hall")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "Bold Hall", res.Data[0].Name)
}

func TestEditUnknownRecordIs404(t *testing.T) {
	a := newApp(t)

	// an invalid form must not hide the missing record
	for _, path := range []string{"/venues/999/edit", "/artists/999/edit"} {
		w := a.post(path, url.Values{"name": {""}})
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Not Found", path)
	}
}

func TestDeleteShowFlow(t *testing.T) {
	a := newApp(t)
	v := a.venue("Park Square")
	ar := a.artist("The Wild Sax Band")
	sh := &models.Show{VenueID: v.ID, ArtistID: ar.ID, StartTime: now.Add(time.Hour)}
	require.NoError(t, a.store.CreateShow(context.Background(), sh))

	w := a.do(httptest.NewRequest(http.MethodDelete, "/shows/"+itoa(sh.ID), nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/shows", w.Header().Get("Location"))

	w = a.get("/shows")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Show was deleted successfully!")
	assert.Zero(t, a.countShows())

	// venue and artist stay
	_, err := a.store.Venue(context.Background(), v.ID)
	assert.NoError(t, err)
	_, err = a.store.Artist(context.Background(), ar.ID)
	assert.NoError(t, err)

	w = a.do(httptest.NewRequest(http.MethodDelete, "/shows/"+itoa(sh.ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteArtistFlow(t *testing.T) {
	a := newApp(t)
	v := a.venue("Park Square")
	ar := a.artist("Matt Quevedo")
	require.NoError(t, a.store.CreateShow(context.Background(),
		&models.Show{VenueID: v.ID, ArtistID: ar.ID, StartTime: now.Add(time.Hour)}))

	w := a.do(httptest.NewRequest(http.MethodDelete, "/artists/"+itoa(ar.ID), nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, a.get("/").Body.String(), "Artist Matt Quevedo was deleted successfully!")
	assert.Zero(t, a.countShows())
	assert.Equal(t, http.StatusNotFound, a.get("/artists/"+itoa(ar.ID)).Code)
}

func TestDeleteFormAliases(t *testing.T) {
	a := newApp(t)
	v := a.venue("Doomed Hall")
	ar := a.artist("Guns N Petals")
	other := a.venue("Park Square")
	require.NoError(t, a.store.CreateShow(context.Background(),
		&models.Show{VenueID: v.ID, ArtistID: ar.ID, StartTime: now.Add(time.Hour)}))
	require.NoError(t, a.store.CreateShow(context.Background(),
		&models.Show{VenueID: other.ID, ArtistID: ar.ID, StartTime: now.Add(2 * time.Hour)}))

	w := a.post("/artists/"+itoa(ar.ID)+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, a.get("/").Body.String(), "Artist Guns N Petals was deleted successfully!")
	assert.Zero(t, a.countShows())

	w = a.post("/venues/"+itoa(v.ID)+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, a.get("/").Body.String(), "Venue Doomed Hall was deleted successfully!")
	assert.Equal(t, http.StatusNotFound, a.get("/venues/"+itoa(v.ID)).Code)
	assert.Equal(t, http.StatusOK, a.get("/venues/"+itoa(other.ID)).Code)

	assert.Equal(t, http.StatusNotFound, a.post("/artists/999/delete", url.Values{}).Code)
}

func TestPanicRendersServerErrorPage(t *testing.T) {
	a := newApp(t)
	a.router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := a.get("/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")

	// the engine keeps serving
	assert.Equal(t, http.StatusOK, a.get("/health").Code)
}

func TestHealth(t *testing.T) {
	a := newApp(t)

	w := a.get("/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestCORSConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)

	some := corsConfig([]string{"https://fyyur.example"})
	assert.False(t, some.AllowAllOrigins)
	assert.Equal(t, []string{"https://fyyur.example"}, some.AllowOrigins)
	assert.True(t, some.AllowCredentials)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
