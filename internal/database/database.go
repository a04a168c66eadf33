package database

import (
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/logger"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DSN()), log)
}

// Open connects through the given dialector and migrates the schema.
func Open(dialector gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Gorm(log),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("dialect", dialector.Name()).Msg("Database connected and migrated successfully")
	return db, nil
}

func SeedData(db *gorm.DB, log zerolog.Logger) error {
	// Check if data already exists
	var count int64
	if err := db.Model(&models.Venue{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count venues: %w", err)
	}
	if count > 0 {
		log.Info().Int64("venues", count).Msg("Data already seeded, skipping...")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		venues := []models.Venue{
			{
				Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
				Phone: "123-123-1234", WebsiteLink: "https://www.themusicalhop.com",
				FacebookLink:  "https://www.facebook.com/TheMusicalHop",
				ImageLink:     "https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400",
				Genres:        models.Genres{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
				SeekingTalent: true, SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			},
			{
				Name: "The Dueling Pianos Bar", City: "New York", State: "NY", Address: "335 Delancey Street",
				Phone: "914-003-1132", WebsiteLink: "https://www.theduelingpianos.com",
				FacebookLink: "https://www.facebook.com/theduelingpianos",
				ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=750",
				Genres:       models.Genres{"Classical", "R&B", "Hip-Hop"},
			},
			{
				Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", Address: "34 Whiskey Moore Ave",
				Phone: "415-000-1234", WebsiteLink: "https://www.parksquarelivemusicandcoffee.com",
				FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
				ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=747",
				Genres:       models.Genres{"Rock n Roll", "Jazz", "Classical", "Folk"},
			},
		}
		if err := tx.Create(&venues).Error; err != nil {
			return fmt.Errorf("failed to create venues: %w", err)
		}

		artists := []models.Artist{
			{
				Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
				WebsiteLink: "https://www.gunsnpetalsband.com", FacebookLink: "https://www.facebook.com/GunsNPetals",
				ImageLink:    "https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300",
				Genres:       models.Genres{"Rock n Roll"},
				SeekingVenue: true, SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			},
			{
				Name: "Matt Quevedo", City: "New York", State: "NY", Phone: "300-400-5000",
				FacebookLink: "https://www.facebook.com/mattquevedo923251523",
				ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334",
				Genres:       models.Genres{"Jazz"},
			},
			{
				Name: "The Wild Sax Band", City: "San Francisco", State: "CA", Phone: "432-325-5432",
				ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794",
				Genres:    models.Genres{"Jazz", "Classical"},
			},
		}
		if err := tx.Create(&artists).Error; err != nil {
			return fmt.Errorf("failed to create artists: %w", err)
		}

		shows := []models.Show{
			{VenueID: venues[0].ID, ArtistID: artists[0].ID, StartTime: parseDate("2019-05-21T21:30:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[1].ID, StartTime: parseDate("2019-06-15T23:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-01T20:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-08T20:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-15T20:00:00Z")},
		}
		if err := tx.Omit("Venue", "Artist").Create(&shows).Error; err != nil {
			return fmt.Errorf("failed to create shows: %w", err)
		}

		log.Info().Int("venues", len(venues)).Int("artists", len(artists)).Int("shows", len(shows)).
			Msg("Sample data seeded successfully")
		return nil
	})
}

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse(time.RFC3339, dateStr)
	return t
}
