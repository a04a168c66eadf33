package forms

import (
	"errors"
	"strings"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/gin-gonic/gin"
)

const StartTimeLayout = "2006-01-02 15:04:05"

var startTimeLayouts = []string{
	StartTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type VenueForm struct {
	Name               string   `form:"name" binding:"required,max=120"`
	City               string   `form:"city" binding:"required,max=120"`
	State              string   `form:"state" binding:"required,state"`
	Address            string   `form:"address" binding:"max=120"`
	Phone              string   `form:"phone" binding:"required,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url,max=120"`
	Genres             []string `form:"genres" binding:"required,genres"`
	SeekingTalent      bool     `form:"-"`
	SeekingDescription string   `form:"seeking_description" binding:"max=500"`
}

type ArtistForm struct {
	Name               string   `form:"name" binding:"required,max=120"`
	City               string   `form:"city" binding:"required,max=120"`
	State              string   `form:"state" binding:"required,state"`
	Phone              string   `form:"phone" binding:"required,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url,max=120"`
	Genres             []string `form:"genres" binding:"required,genres"`
	SeekingVenue       bool     `form:"-"`
	SeekingDescription string   `form:"seeking_description" binding:"max=500"`
}

type ShowForm struct {
	ArtistID  uint   `form:"artist_id" binding:"required"`
	VenueID   uint   `form:"venue_id" binding:"required"`
	StartTime string `form:"start_time" binding:"required,showtime"`
}

// BindVenue reads a submitted venue form. The returned form always carries
// what was submitted so it can be shown again next to the errors.
func BindVenue(c *gin.Context) (VenueForm, error) {
	var f VenueForm
	err := c.ShouldBind(&f)
	_, f.SeekingTalent = c.GetPostForm("seeking_talent")
	f.trim()
	return f, err
}

func BindArtist(c *gin.Context) (ArtistForm, error) {
	var f ArtistForm
	err := c.ShouldBind(&f)
	_, f.SeekingVenue = c.GetPostForm("seeking_venue")
	f.trim()
	return f, err
}

func BindShow(c *gin.Context) (ShowForm, error) {
	var f ShowForm
	err := c.ShouldBind(&f)
	f.StartTime = strings.TrimSpace(f.StartTime)
	return f, err
}

func (f *VenueForm) trim() {
	for _, s := range []*string{&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription} {
		*s = strings.TrimSpace(*s)
	}
}

func (f *ArtistForm) trim() {
	for _, s := range []*string{&f.Name, &f.City, &f.State, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription} {
		*s = strings.TrimSpace(*s)
	}
}

func (f VenueForm) Venue() models.Venue {
	return models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		Genres:             models.Genres(f.Genres).Normalize(),
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

func VenueFormFrom(v models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		Genres:             []string(v.Genres),
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (f ArtistForm) Artist() models.Artist {
	return models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		Genres:             models.Genres(f.Genres).Normalize(),
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

func ArtistFormFrom(a models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		Genres:             []string(a.Genres),
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.Format(StartTimeLayout)}
}

func (f ShowForm) Show() (models.Show, error) {
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return models.Show{}, err
	}
	return models.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}, nil
}

// ParseStartTime accepts the layouts browsers and the show form produce.
// Times without a zone are taken as UTC.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New(ErrInvalidStartTime)
}
