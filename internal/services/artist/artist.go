package artist

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
	Artists(ctx context.Context) ([]store.Choice, error)
	SearchArtists(ctx context.Context, term string) (store.SearchResult, error)
	Artist(ctx context.Context, id uint) (*models.Artist, error)
	ArtistDetail(ctx context.Context, id uint) (*store.ArtistDetail, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, id uint, artist models.Artist) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id uint) (*models.Artist, error)
}

type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

func (s *Service) SetupRoutes(r gin.IRouter) {
	r.GET("/artists", s.ListArtists)
	r.POST("/artists/search", s.SearchArtists)
	r.GET("/artists/create", s.CreateArtistForm)
	r.POST("/artists/create", s.CreateArtist)
	r.GET("/artists/:id", s.GetArtist)
	r.GET("/artists/:id/edit", s.EditArtistForm)
	r.POST("/artists/:id/edit", s.UpdateArtist)
	r.DELETE("/artists/:id", s.DeleteArtist)
	r.POST("/artists/:id/delete", s.DeleteArtist)
}

func (s *Service) ListArtists(c *gin.Context) {
	artists, err := s.store.Artists(c.Request.Context())
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/artists", gin.H{"title": "Artists", "artists": artists})
}

func (s *Service) SearchArtists(c *gin.Context) {
	term := c.PostForm("search_term")
	results, err := s.store.SearchArtists(c.Request.Context(), term)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/search", gin.H{
		"title":       "Artist search",
		"kind":        "artists",
		"results":     results,
		"search_term": term,
	})
}

func (s *Service) GetArtist(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	artist, err := s.store.ArtistDetail(c.Request.Context(), id)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "pages/show_artist", gin.H{"title": artist.Name, "artist": artist})
}

func (s *Service) CreateArtistForm(c *gin.Context) {
	renderForm(c, http.StatusOK, forms.ArtistForm{}, nil, "/artists/create", "List a new artist", "Create Artist")
}

func (s *Service) CreateArtist(c *gin.Context) {
	form, err := forms.BindArtist(c)
	if err != nil {
		renderForm(c, http.StatusBadRequest, form, forms.Messages(err), "/artists/create", "List a new artist", "Create Artist")
		return
	}

	artist := form.Artist()
	if err := s.store.CreateArtist(c.Request.Context(), &artist); err != nil {
		web.LogStoreError(c, err, "failed to create artist")
		web.Flash(c, fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
		if errors.Is(err, store.ErrValidationFailed) {
			renderForm(c, http.StatusBadRequest, form, nil, "/artists/create", "List a new artist", "Create Artist")
			return
		}
		web.Redirect(c, "/")
		return
	}

	web.Flash(c, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	web.Redirect(c, "/")
}

// EditArtistForm shows the edit form pre-filled from the stored artist.
func (s *Service) EditArtistForm(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	artist, err := s.store.Artist(c.Request.Context(), id)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	renderForm(c, http.StatusOK, forms.ArtistFormFrom(*artist), nil,
		fmt.Sprintf("/artists/%d/edit", id), "Edit artist "+artist.Name, "Edit Artist")
}

func (s *Service) UpdateArtist(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	action := fmt.Sprintf("/artists/%d/edit", id)

	// an unknown record is a 404 whatever was submitted
	existing, err := s.store.Artist(c.Request.Context(), id)
	if err != nil {
		web.StoreError(c, err)
		return
	}
	heading := "Edit artist " + existing.Name

	form, err := forms.BindArtist(c)
	if err != nil {
		renderForm(c, http.StatusBadRequest, form, forms.Messages(err), action, heading, "Edit Artist")
		return
	}

	artist, err := s.store.UpdateArtist(c.Request.Context(), id, form.Artist())
	switch {
	case errors.Is(err, store.ErrNotFound):
		web.StoreError(c, err)
		return
	case errors.Is(err, store.ErrValidationFailed):
		web.LogStoreError(c, err, "failed to update artist")
		renderForm(c, http.StatusBadRequest, form, map[string]string{"_": err.Error()}, action, heading, "Edit Artist")
		return
	case err != nil:
		web.LogStoreError(c, err, "failed to update artist")
		web.Flash(c, fmt.Sprintf("An error occurred. %s info could not be updated.", form.Name))
	default:
		web.Flash(c, fmt.Sprintf("%s info was updated successfully!", artist.Name))
	}
	web.Redirect(c, fmt.Sprintf("/artists/%d", id))
}

func (s *Service) DeleteArtist(c *gin.Context) {
	id, ok := web.ParamID(c)
	if !ok {
		return
	}
	artist, err := s.store.DeleteArtist(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		web.StoreError(c, err)
		return
	}
	if err != nil {
		web.LogStoreError(c, err, "failed to delete artist")
		web.Flash(c, "An error occurred. Artist could not be deleted.")
		web.Redirect(c, "/")
		return
	}
	web.Flash(c, fmt.Sprintf("Artist %s was deleted successfully!", artist.Name))
	web.Redirect(c, "/")
}

func renderForm(c *gin.Context, status int, form forms.ArtistForm, errs map[string]string, action, heading, submit string) {
	web.Render(c, status, "forms/artist", gin.H{
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
