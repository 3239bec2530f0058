package storage

import "time"

// Location is a deduplicated place. The (lat, lon) pair is the dedup key;
// re-saving an existing pair only refreshes the label.
type Location struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Label string  `json:"label"`
	Lat   float64 `gorm:"uniqueIndex:idx_locations_lat_lon" json:"lat"`
	Lon   float64 `gorm:"uniqueIndex:idx_locations_lat_lon" json:"lon"`
}

// WeatherRequest is a persisted lookup: a location, an inclusive ISO date
// range and a normalized temperature unit.
type WeatherRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LocationID uint      `gorm:"index" json:"location_id"`
	Location   Location  `json:"location"`
	StartDate  string    `gorm:"type:date" json:"start_date"`
	EndDate    string    `gorm:"type:date" json:"end_date"`
	Unit       string    `json:"unit"`
	CreatedAt  time.Time `json:"created_at"`
}
