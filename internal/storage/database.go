package storage

import (
	"errors"
	"fmt"
	"time"

	"weatherapp/internal/apperr"
	"weatherapp/internal/weather"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	dateLayout = "2006-01-02"

	// listLimit caps how many requests a single listing returns.
	listLimit = 200
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Location{}, &WeatherRequest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// ValidateRange checks that both dates are ISO formatted and that the range
// is not inverted. A single-day range (end == start) is valid.
func ValidateRange(startDate, endDate string) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return apperr.Validationf("invalid start_date %q: expected YYYY-MM-DD", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return apperr.Validationf("invalid end_date %q: expected YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return apperr.Validationf("end_date must be on/after start_date")
	}
	return nil
}

// UpsertLocation inserts a location or, when the exact (lat, lon) pair
// already exists, refreshes its label and returns the existing id. A lost
// race against a concurrent insert on the same pair falls back to the
// update path instead of failing.
func (d *Database) UpsertLocation(label string, lat, lon float64) (uint, error) {
	var loc Location
	err := d.db.Where("lat = ? AND lon = ?", lat, lon).First(&loc).Error
	if err == nil {
		if loc.Label != label {
			if err := d.db.Model(&loc).Update("label", label).Error; err != nil {
				return 0, err
			}
		}
		return loc.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	loc = Location{Label: label, Lat: lat, Lon: lon}
	if createErr := d.db.Create(&loc).Error; createErr != nil {
		var existing Location
		if err := d.db.Where("lat = ? AND lon = ?", lat, lon).First(&existing).Error; err != nil {
			return 0, createErr
		}
		if err := d.db.Model(&existing).Update("label", label).Error; err != nil {
			return 0, err
		}
		return existing.ID, nil
	}
	return loc.ID, nil
}

// RelabelLocation updates only the label of an existing location.
func (d *Database) RelabelLocation(id uint, label string) error {
	result := d.db.Model(&Location{}).Where("id = ?", id).Update("label", label)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("location %d not found", id)
	}
	return nil
}

// CreateRequest validates the range, normalizes the unit, upserts the
// location and inserts the request row.
func (d *Database) CreateRequest(label string, lat, lon float64, startDate, endDate, unit string) (uint, error) {
	if err := ValidateRange(startDate, endDate); err != nil {
		return 0, err
	}

	locationID, err := d.UpsertLocation(label, lat, lon)
	if err != nil {
		return 0, err
	}

	request := WeatherRequest{
		LocationID: locationID,
		StartDate:  startDate,
		EndDate:    endDate,
		Unit:       weather.NormalizeUnit(unit),
	}
	if err := d.db.Create(&request).Error; err != nil {
		return 0, err
	}
	return request.ID, nil
}

func (d *Database) GetRequest(id uint) (*WeatherRequest, error) {
	var request WeatherRequest
	err := d.db.Preload("Location").First(&request, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("weather request %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListRequests returns requests most-recently-created first.
func (d *Database) ListRequests(limit int) ([]WeatherRequest, error) {
	if limit <= 0 || limit > listLimit {
		limit = listLimit
	}

	var requests []WeatherRequest
	err := d.db.Preload("Location").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateRequest applies a partial update. When only one date is supplied the
// other is read from the stored row before the merged range is re-validated;
// a nil field leaves the column untouched.
func (d *Database) UpdateRequest(id uint, startDate, endDate, unit *string) error {
	current, err := d.GetRequest(id)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if startDate != nil || endDate != nil {
		start := current.StartDate
		if startDate != nil {
			start = *startDate
		}
		end := current.EndDate
		if endDate != nil {
			end = *endDate
		}
		if err := ValidateRange(start, end); err != nil {
			return err
		}
		updates["start_date"] = start
		updates["end_date"] = end
	}
	if unit != nil {
		updates["unit"] = weather.NormalizeUnit(*unit)
	}
	if len(updates) == 0 {
		return nil
	}

	return d.db.Model(&WeatherRequest{}).Where("id = ?", id).Updates(updates).Error
}

func (d *Database) DeleteRequest(id uint) error {
	result := d.db.Delete(&WeatherRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("weather request %d not found", id)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
