package models

import (
	"database/sql/driver"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Genres is a multi-value column. PostgreSQL stores it as text[]; other
// dialects keep the same array literal in a text column.
type Genres []string

func (g *Genres) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*g = Genres(arr)
	return nil
}

func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(g).Value()
}

func (Genres) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (g Genres) String() string {
	return strings.Join(g, ", ")
}

func (g Genres) Contains(genre string) bool {
	for _, v := range g {
		if v == genre {
			return true
		}
	}
	return false
}

// Normalize trims entries and drops blanks and duplicates, keeping order.
func (g Genres) Normalize() Genres {
	out := make(Genres, 0, len(g))
	for _, v := range g {
		v = strings.TrimSpace(v)
		if v == "" || out.Contains(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
