package show

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/store"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
)

type Store interface {
	Shows(ctx context.Context) ([]store.ShowListing, error)
	CreateShow(ctx context.Context, show *models.Show) error
	DeleteShow(ctx context.Context, id uint) error
	ArtistChoices(ctx context.Context) ([]store.Choice, error)
	VenueChoices(ctx context.Context) ([]store.Choice, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(s Store) *Service {
	return &Service{store: s, now: time.Now}
}

func (s *Service) SetupRoutes(r gin.IRouter) {
	r.GET("/shows", s.ListShows)
	r.GET("/shows/create", s.CreateShowForm)
	r.POST("/shows/create", s.CreateShow)
	r.DELETE("/shows/:id", s.DeleteShow)
}

func (s *Service) ListShows(c *gin.Context) {
	shows, err := s.store.Shows(c.Request.Context())
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/shows", gin.H{"title": "Shows", "shows": shows})
}

func (s *Service) CreateShowForm(c *gin.Context) {
	s.renderForm(c, http.StatusOK, forms.NewShowForm(s.now().UTC()), nil)
}

func (s *Service) CreateShow(c *gin.Context) {
	form, err := forms.BindShow(c)
	if err != nil {
		s.renderForm(c, http.StatusBadRequest, form, forms.Messages(err))
		return
	}
	show, err := form.Show()
	if err != nil {
		s.renderForm(c, http.StatusBadRequest, form, map[string]string{"start_time": err.Error()})
		return
	}

	if err := s.store.CreateShow(c.Request.Context(), &show); err != nil {
		web.LogStoreError(c, err, "failed to create show")
		web.Flash(c, "An error occurred. Show could not be listed.")
		if errors.Is(err, store.ErrForeignKeyViolation) || errors.Is(err, store.ErrValidationFailed) {
			s.renderForm(c, http.StatusBadRequest, form, nil)
			return
		}
		web.Redirect(c, "/")
		return
	}

	web.Flash(c, "Show was successfully listed!")
	web.Redirect(c, "/")
}

func (s *Service) DeleteShow(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	err := s.store.DeleteShow(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		web.StoreError(c, err)
		return
	}
	if err != nil {
		web.LogStoreError(c, err, "failed to delete show")
		web.Flash(c, "An error occurred. Show could not be deleted.")
		web.Redirect(c, "/shows")
		return
	}
	web.Flash(c, "Show was deleted successfully!")
	web.Redirect(c, "/shows")
}

func (s *Service) renderForm(c *gin.Context, status int, form forms.ShowForm, errs map[string]string) {
	ctx := c.Request.Context()
	artists, err := s.store.ArtistChoices(ctx)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	venues, err := s.store.VenueChoices(ctx)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, status, "forms/show", gin.H{
		"title":   "List a new show",
		"form":    form,
		"errors":  errs,
		"artists": artists,
		"venues":  venues,
	})
}
