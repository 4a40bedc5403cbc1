package registry

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// City is one entry in the curated station registry.
type City struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Name      string  `json:"name"`
	ShortName string  `gorm:"index" json:"short_name"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Registry is the sqlite-backed city registry. It is read-only after
// seeding; lookups that find nothing return (nil, nil).
type Registry struct {
	db *gorm.DB
}

func Open(path string) (*Registry, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	if err := db.AutoMigrate(&City{}); err != nil {
		return nil, fmt.Errorf("failed to migrate registry: %w", err)
	}

	r := &Registry{db: db}
	if err := r.seed(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) seed() error {
	var count int64
	if err := r.db.Model(&City{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count registry rows: %w", err)
	}
	if count > 0 {
		return nil
	}
	cities := seedCities()
	if err := r.db.Create(&cities).Error; err != nil {
		return fmt.Errorf("failed to seed registry: %w", err)
	}
	return nil
}

func (r *Registry) ByID(id string) (*City, error) {
	var city City
	result := r.db.Where("id = ?", id).First(&city)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &city, nil
}

func (r *Registry) ByShortName(name string) (*City, error) {
	var city City
	result := r.db.Where("lower(short_name) = ?", strings.ToLower(name)).First(&city)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &city, nil
}

// FindByName resolves free-text input: exact name first, then short
// name, then a substring match, all case-insensitive.
func (r *Registry) FindByName(name string) (*City, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil, nil
	}

	var city City
	result := r.db.Where("lower(name) = ?", q).First(&city)
	if result.Error == nil {
		return &city, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	if c, err := r.ByShortName(q); err != nil || c != nil {
		return c, err
	}

	result = r.db.Where("lower(name) LIKE ?", "%"+q+"%").Order("id").First(&city)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &city, nil
}

func (r *Registry) All() ([]City, error) {
	var cities []City
	if err := r.db.Order("id").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *Registry) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
