package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
)

type VenueArea struct {
	City   string
	State  string
	Venues []SearchHit
}

type VenueDetail struct {
	models.Venue
	PastShows          []ShowRow
	UpcomingShows      []ShowRow
	PastShowsCount     int
	UpcomingShowsCount int
}

type venueRow struct {
	ID               uint
	Name             string
	City             string
	State            string
	NumUpcomingShows int64
}

const upcomingForVenue = "(SELECT COUNT(*) FROM shows WHERE shows.venue_id = venues.id AND shows.start_time > ?) AS num_upcoming_shows"

// VenuesByLocation groups every venue by (state, city), each venue carrying
// its own upcoming show count.
func (s *Store) VenuesByLocation(ctx context.Context) ([]VenueArea, error) {
	var rows []venueRow
	err := s.session(ctx).
		Model(&models.Venue{}).
		Select("venues.id, venues.name, venues.city, venues.state, "+upcomingForVenue, s.clock()).
		Order("venues.state, venues.city, venues.name, venues.id").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err, "list venues")
	}

	var areas []VenueArea
	for _, row := range rows {
		if n := len(areas); n == 0 || areas[n-1].City != row.City || areas[n-1].State != row.State {
			areas = append(areas, VenueArea{City: row.City, State: row.State})
		}
		last := &areas[len(areas)-1]
		last.Venues = append(last.Venues, SearchHit{ID: row.ID, Name: row.Name, NumUpcomingShows: row.NumUpcomingShows})
	}
	return areas, nil
}

func (s *Store) SearchVenues(ctx context.Context, term string) (SearchResult, error) {
	hits := []SearchHit{}
	err := s.session(ctx).
		Model(&models.Venue{}).
		Select("venues.id, venues.name, "+upcomingForVenue, s.clock()).
		Where(nameLike, likePattern(term)).
		Order("venues.name, venues.id").
		Scan(&hits).Error
	if err != nil {
		return SearchResult{}, classify(err, "search venues")
	}
	return SearchResult{Count: len(hits), Data: hits}, nil
}

func (s *Store) Venue(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := s.session(ctx).First(&venue, id).Error; err != nil {
		return nil, classify(err, fmt.Sprintf("get venue %d", id))
	}
	return &venue, nil
}

func (s *Store) VenueDetail(ctx context.Context, id uint) (*VenueDetail, error) {
	venue, err := s.Venue(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	detail := &VenueDetail{Venue: *venue}
	if detail.PastShows, err = s.venueShows(ctx, id, "<", now); err != nil {
		return nil, err
	}
	if detail.UpcomingShows, err = s.venueShows(ctx, id, ">", now); err != nil {
		return nil, err
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

func (s *Store) venueShows(ctx context.Context, venueID uint, op string, now time.Time) ([]ShowRow, error) {
	rows := []ShowRow{}
	err := s.session(ctx).
		Table("shows").
		Select("shows.id, artists.id AS other_id, artists.name AS other_name, artists.image_link, shows.start_time").
		Joins("JOIN artists ON artists.id = shows.artist_id").
		Where("shows.venue_id = ? AND shows.start_time "+op+" ?", venueID, now).
		Order("shows.start_time, shows.id").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err, fmt.Sprintf("list shows for venue %d", venueID))
	}
	return rows, nil
}

// CountVenueShows returns how many of the venue's shows start strictly before
// and strictly after now.
func (s *Store) CountVenueShows(ctx context.Context, venueID uint) (past, upcoming int64, err error) {
	return s.countShows(ctx, "venue_id", venueID)
}

func (s *Store) countShows(ctx context.Context, column string, id uint) (past, upcoming int64, err error) {
	now := s.clock()
	db := s.session(ctx).Model(&models.Show{})
	if err = db.Where(column+" = ? AND start_time < ?", id, now).Count(&past).Error; err != nil {
		return 0, 0, classify(err, "count past shows")
	}
	db = s.session(ctx).Model(&models.Show{})
	if err = db.Where(column+" = ? AND start_time > ?", id, now).Count(&upcoming).Error; err != nil {
		return 0, 0, classify(err, "count upcoming shows")
	}
	return past, upcoming, nil
}

func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) error {
	if err := validateVenue(venue); err != nil {
		return err
	}
	venue.ID = 0
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(venue).Error
	})
	return classify(err, "create venue")
}

// UpdateVenue overwrites every editable column of the venue in one statement.
func (s *Store) UpdateVenue(ctx context.Context, id uint, venue models.Venue) (*models.Venue, error) {
	if err := validateVenue(&venue); err != nil {
		return nil, err
	}
	var existing models.Venue
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&existing).Select(models.VenueColumns).Updates(&venue).Error; err != nil {
			return err
		}
		return tx.First(&existing, id).Error
	})
	if err != nil {
		return nil, classify(err, fmt.Sprintf("update venue %d", id))
	}
	return &existing, nil
}

// DeleteVenue removes the venue together with its shows.
func (s *Store) DeleteVenue(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&venue, id).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(&venue).Error
	})
	if err != nil {
		return nil, classify(err, fmt.Sprintf("delete venue %d", id))
	}
	return &venue, nil
}

func (s *Store) RecentVenues(ctx context.Context, limit int) ([]Choice, error) {
	var venues []Choice
	err := s.session(ctx).Model(&models.Venue{}).
		Select("id, name").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Scan(&venues).Error
	return venues, classify(err, "list recent venues")
}

func (s *Store) VenueChoices(ctx context.Context) ([]Choice, error) {
	var venues []Choice
	err := s.session(ctx).Model(&models.Venue{}).Select("id, name").Order("name, id").Scan(&venues).Error
	return venues, classify(err, "list venue choices")
}

func validateVenue(v *models.Venue) error {
	v.Genres = v.Genres.Normalize()
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("venue name is required: %w", ErrValidationFailed)
	}
	if strings.TrimSpace(v.City) == "" || strings.TrimSpace(v.State) == "" {
		return fmt.Errorf("venue city and state are required: %w", ErrValidationFailed)
	}
	return nil
}
