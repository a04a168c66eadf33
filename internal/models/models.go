package models

import (
	"time"

	"gorm.io/gorm"
)

type Venue struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"` // required
	City               string `gorm:"not null"`
	State              string `gorm:"not null"`
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	Genres             Genres
	SeekingTalent      bool `gorm:"not null;default:false"`
	SeekingDescription string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Artist struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"not null"`
	State              string `gorm:"not null"`
	Phone              string
	ImageLink          string
	FacebookLink       string
	WebsiteLink        string
	Genres             Genres
	SeekingVenue       bool `gorm:"not null;default:false"`
	SeekingDescription string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Show struct {
	ID        uint      `gorm:"primaryKey"`
	VenueID   uint      `gorm:"not null;index"`
	ArtistID  uint      `gorm:"not null;index"`
	StartTime time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	// Relationships
	Venue  Venue  `gorm:"foreignKey:VenueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Artist Artist `gorm:"foreignKey:ArtistID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// VenueColumns are the user-editable venue columns, written together on every edit.
var VenueColumns = []string{
	"name", "city", "state", "address", "phone", "image_link", "facebook_link",
	"website_link", "genres", "seeking_talent", "seeking_description",
}

var ArtistColumns = []string{
	"name", "city", "state", "phone", "image_link", "facebook_link",
	"website_link", "genres", "seeking_venue", "seeking_description",
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Venue{},
		&Artist{},
		&Show{},
	)
}
