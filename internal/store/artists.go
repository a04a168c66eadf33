package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
)

type ArtistDetail struct {
	models.Artist
	PastShows          []ShowRow
	UpcomingShows      []ShowRow
	PastShowsCount     int
	UpcomingShowsCount int
}

const upcomingForArtist = "(SELECT COUNT(*) FROM shows WHERE shows.artist_id = artists.id AND shows.start_time > ?) AS num_upcoming_shows"

// Artists lists every artist by name, without aggregates.
func (s *Store) Artists(ctx context.Context) ([]Choice, error) {
	artists := []Choice{}
	err := s.session(ctx).Model(&models.Artist{}).Select("id, name").Order("name, id").Scan(&artists).Error
	if err != nil {
		return nil, classify(err, "list artists")
	}
	return artists, nil
}

func (s *Store) SearchArtists(ctx context.Context, term string) (SearchResult, error) {
	hits := []SearchHit{}
	err := s.session(ctx).
		Model(&models.Artist{}).
		Select("artists.id, artists.name, "+upcomingForArtist, s.clock()).
		Where(nameLike, likePattern(term)).
		Order("artists.name, artists.id").
		Scan(&hits).Error
	if err != nil {
		return SearchResult{}, classify(err, "search artists")
	}
	return SearchResult{Count: len(hits), Data: hits}, nil
}

func (s *Store) Artist(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	if err := s.session(ctx).First(&artist, id).Error; err != nil {
		return nil, classify(err, fmt.Sprintf("get artist %d", id))
	}
	return &artist, nil
}

func (s *Store) ArtistDetail(ctx context.Context, id uint) (*ArtistDetail, error) {
	artist, err := s.Artist(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	detail := &ArtistDetail{Artist: *artist}
	if detail.PastShows, err = s.artistShows(ctx, id, "<", now); err != nil {
		return nil, err
	}
	if detail.UpcomingShows, err = s.artistShows(ctx, id, ">", now); err != nil {
		return nil, err
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

func (s *Store) artistShows(ctx context.Context, artistID uint, op string, now time.Time) ([]ShowRow, error) {
	rows := []ShowRow{}
	err := s.session(ctx).
		Table("shows").
		Select("shows.id, venues.id AS other_id, venues.name AS other_name, venues.image_link, shows.start_time").
		Joins("JOIN venues ON venues.id = shows.venue_id").
		Where("shows.artist_id = ? AND shows.start_time "+op+" ?", artistID, now).
		Order("shows.start_time, shows.id").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err, fmt.Sprintf("list shows for artist %d", artistID))
	}
	return rows, nil
}

func (s *Store) CountArtistShows(ctx context.Context, artistID uint) (past, upcoming int64, err error) {
	return s.countShows(ctx, "artist_id", artistID)
}

func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if err := validateArtist(artist); err != nil {
		return err
	}
	artist.ID = 0
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(artist).Error
	})
	return classify(err, "create artist")
}

func (s *Store) UpdateArtist(ctx context.Context, id uint, artist models.Artist) (*models.Artist, error) {
	if err := validateArtist(&artist); err != nil {
		return nil, err
	}
	var existing models.Artist
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&existing).Select(models.ArtistColumns).Updates(&artist).Error; err != nil {
			return err
		}
		return tx.First(&existing, id).Error
	})
	if err != nil {
		return nil, classify(err, fmt.Sprintf("update artist %d", id))
	}
	return &existing, nil
}

func (s *Store) DeleteArtist(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artist, id).Error; err != nil {
			return err
		}
		if err := tx.Where("artist_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(&artist).Error
	})
	if err != nil {
		return nil, classify(err, fmt.Sprintf("delete artist %d", id))
	}
	return &artist, nil
}

func (s *Store) RecentArtists(ctx context.Context, limit int) ([]Choice, error) {
	var artists []Choice
	err := s.session(ctx).Model(&models.Artist{}).
		Select("id, name").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Scan(&artists).Error
	return artists, classify(err, "list recent artists")
}

func validateArtist(a *models.Artist) error {
	a.Genres = a.Genres.Normalize()
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("artist name is required: %w", ErrValidationFailed)
	}
	if strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.State) == "" {
		return fmt.Errorf("artist city and state are required: %w", ErrValidationFailed)
	}
	return nil
}
