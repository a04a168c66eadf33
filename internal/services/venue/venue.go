package venue

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/store"
	"github.com/JonasLeetTheWay/fyyur-go/internal/web"

	"github.com/gin-gonic/gin"
)

type Store interface {
	VenuesByLocation(ctx context.Context) ([]store.VenueArea, error)
	SearchVenues(ctx context.Context, term string) (store.SearchResult, error)
	Venue(ctx context.Context, id uint) (*models.Venue, error)
	VenueDetail(ctx context.Context, id uint) (*store.VenueDetail, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, id uint, venue models.Venue) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id uint) (*models.Venue, error)
}

type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

func (s *Service) SetupRoutes(r gin.IRouter) {
	r.GET("/venues", s.ListVenues)
	r.POST("/venues/search", s.SearchVenues)
	r.GET("/venues/create", s.CreateVenueForm)
	r.POST("/venues/create", s.CreateVenue)
	r.GET("/venues/:id", s.GetVenue)
	r.GET("/venues/:id/edit", s.EditVenueForm)
	r.POST("/venues/:id/edit", s.UpdateVenue)
	r.DELETE("/venues/:id", s.DeleteVenue)
	r.POST("/venues/:id/delete", s.DeleteVenue)
}

func (s *Service) ListVenues(c *gin.Context) {
	areas, err := s.store.VenuesByLocation(c.Request.Context())
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/venues", gin.H{"title": "Venues", "areas": areas})
}

func (s *Service) SearchVenues(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := s.store.SearchVenues(c.Request.Context(), term)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/search", gin.H{
		"title":       "Venue search",
		"kind":        "venues",
		"results":     results,
		"search_term": term,
	})
}

func (s *Service) GetVenue(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	venue, err := s.store.VenueDetail(c.Request.Context(), id)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/show_venue", gin.H{"title": venue.Name, "venue": venue})
}

func (s *Service) CreateVenueForm(c *gin.Context) {
	renderForm(c, http.StatusOK, forms.VenueForm{}, nil, "/venues/create", "List a new venue", "Create Venue")
}

func (s *Service) CreateVenue(c *gin.Context) {
	form, err := forms.BindVenue(c)
	if err != nil {
		renderForm(c, http.StatusBadRequest, form, forms.Messages(err), "/venues/create", "List a new venue", "Create Venue")
		return
	}

	venue := form.Venue()
	if err := s.store.CreateVenue(c.Request.Context(), &venue); err != nil {
		web.LogStoreError(c, err, "failed to create venue")
		web.Flash(c, fmt.Sprintf("An error occurred. Venue %s could not be added.", form.Name))
		if errors.Is(err, store.ErrValidationFailed) {
			renderForm(c, http.StatusBadRequest, form, nil, "/venues/create", "List a new venue", "Create Venue")
			return
		}
		web.Redirect(c, "/")
		return
	}

	web.Flash(c, fmt.Sprintf("Venue %s was added successfully!", venue.Name))
	web.Redirect(c, "/")
}

func (s *Service) EditVenueForm(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	venue, err := s.store.Venue(c.Request.Context(), id)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	renderForm(c, http.StatusOK, forms.VenueFormFrom(*venue), nil,
		fmt.Sprintf("/venues/%d/edit", id), "Edit venue "+venue.Name, "Edit Venue")
}

func (s *Service) UpdateVenue(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	action := fmt.Sprintf("/venues/%d/edit", id)

	// an unknown record is a 404 whatever was submitted
	existing, err := s.store.Venue(c.Request.Context(), id)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	heading := "Edit venue " + existing.Name

	form, err := forms.BindVenue(c)
	if err != nil {
		renderForm(c, http.StatusBadRequest, form, forms.Messages(err), action, heading, "Edit Venue")
		return
	}

	venue, err := s.store.UpdateVenue(c.Request.Context(), id, form.Venue())
	switch {
	case errors.Is(err, store.ErrNotFound):
		web.StoreError(c, err)
		return
	case errors.Is(err, store.ErrValidationFailed):
		web.LogStoreError(c, err, "failed to update venue")
		renderForm(c, http.StatusBadRequest, form, map[string]string{"_": err.Error()}, action, heading, "Edit Venue")
		return
	case err != nil:
		web.LogStoreError(c, err, "failed to update venue")
		web.Flash(c, fmt.Sprintf("An error occurred. %s info could not be updated.", form.Name))
	default:
		web.Flash(c, fmt.Sprintf("%s info was updated successfully!", venue.Name))
	}
	web.Redirect(c, fmt.Sprintf("/venues/%d", id))
}

func (s *Service) DeleteVenue(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	venue, err := s.store.DeleteVenue(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		web.StoreError(c, err)
		return
	}
	if err != nil {
		web.LogStoreError(c, err, "failed to delete venue")
		web.Flash(c, "An error occurred. Venue could not be deleted.")
		web.Redirect(c, "/")
		return
	}
	web.Flash(c, fmt.Sprintf("Venue %s was deleted successfully!", venue.Name))
	web.Redirect(c, "/")
}

func renderForm(c *gin.Context, status int, form forms.VenueForm, errs map[string]string, action, heading, submit string) {
	web.Render(c, status, "forms/venue", gin.H{
		"title":         heading,
		"heading":       heading,
		"action":        action,
		"submit":        submit,
		"form":          form,
		"errors":        errs,
		"genre_choices": forms.Genres,
		"state_choices": forms.States,
	})
}
