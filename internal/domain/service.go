package domain

import "time"

// CatalogService represents a bookable service of the center.
// The catalog is read-only for this core: it is managed by an external
// admin tool and seeded by migrations.
type CatalogService struct {
	ID            int64
	Name          string
	Category      string
	MaxDailySlots int // Дневной потолок записей по этой услуге
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsBookable returns true if new appointments may be accepted for the service
// (capacity for a specific date is checked separately)
func (s *CatalogService) IsBookable() bool {
	return s.IsActive && s.MaxDailySlots > 0
}
