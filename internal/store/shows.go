package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"gorm.io/gorm"
)

// Shows joins every show with its artist and venue, earliest first.
func (s *Store) Shows(ctx context.Context) ([]ShowListing, error) {
	shows := []ShowListing{}
	err := s.session(ctx).
		Table("shows").
		Select("shows.id, shows.venue_id, venues.name AS venue_name, shows.artist_id, " +
			"artists.name AS artist_name, artists.image_link AS artist_image_link, shows.start_time").
		Joins("JOIN venues ON venues.id = shows.venue_id").
		Joins("JOIN artists ON artists.id = shows.artist_id").
		Order("shows.start_time, shows.id").
		Scan(&shows).Error
	if err != nil {
		return nil, classify(err, "list shows")
	}
	return shows, nil
}

// CreateShow inserts the show once both the artist and the venue are known to
// exist. A missing reference leaves nothing behind.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) error {
	if show.ArtistID == 0 || show.VenueID == 0 {
		return fmt.Errorf("show needs an artist and a venue: %w", ErrValidationFailed)
	}
	if show.StartTime.IsZero() {
		return fmt.Errorf("show start time is required: %w", ErrValidationFailed)
	}
	show.ID = 0
	show.StartTime = show.StartTime.UTC().Truncate(time.Microsecond)

	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Artist{}, "artist", show.ArtistID); err != nil {
			return err
		}
		if err := mustExist(tx, &models.Venue{}, "venue", show.VenueID); err != nil {
			return err
		}
		return tx.Omit("Venue", "Artist").Create(show).Error
	})
	return classify(err, "create show")
}

func mustExist(tx *gorm.DB, model any, name string, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %d does not exist: %w", name, id, ErrForeignKeyViolation)
	}
	return nil
}

func (s *Store) DeleteShow(ctx context.Context, id uint) error {
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Show{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return classify(err, fmt.Sprintf("delete show %d", id))
}

func (s *Store) ArtistChoices(ctx context.Context) ([]Choice, error) {
	return s.Artists(ctx)
}
