package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the clock that splits shows into past and upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// clock returns the current time in UTC, truncated to the precision every
// supported database keeps.
func (s *Store) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Store) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// likePattern builds a case-insensitive substring pattern with LIKE
// wildcards in term escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

const nameLike = `LOWER(name) LIKE ? ESCAPE '\'`

type SearchResult struct {
	Count int
	Data  []SearchHit
}

type SearchHit struct {
	ID               uint
	Name             string
	NumUpcomingShows int64
}

// ShowRow is one show on a venue or artist detail page. The counterpart
// columns hold the artist for a venue page and the venue for an artist page.
type ShowRow struct {
	ID        uint
	OtherID   uint
	OtherName string
	ImageLink string
	StartTime time.Time
}

type ShowListing struct {
	ID              uint
	VenueID         uint
	VenueName       string
	ArtistID        uint
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

type Choice struct {
	ID   uint
	Name string
}
