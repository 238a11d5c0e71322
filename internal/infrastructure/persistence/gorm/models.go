// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// RecipeModel represents the GORM model for recipes. Remix ids carry a
// suffix, so the key is a plain string rather than a UUID column.
type RecipeModel struct {
	ID          string `gorm:"type:varchar(100);primaryKey"`
	Slug        string `gorm:"type:varchar(255);index;not null"`
	Title       string `gorm:"type:varchar(255);not null;index"`
	Description string `gorm:"type:text"`
	Story       string `gorm:"type:text"`

	// Free-text timings, shown verbatim ("15 minutos", "1 hora")
	PrepTime  string `gorm:"type:varchar(50)"`
	CookTime  string `gorm:"type:varchar(50)"`
	TotalTime string `gorm:"type:varchar(50)"`

	Ingredients JSONField   `gorm:"type:json"`
	Steps       StringSlice `gorm:"type:json"`
	Nutrition   JSONField   `gorm:"type:json"`
	Affiliates  JSONField   `gorm:"type:json"`
	FAQ         JSONField   `gorm:"type:json"`
	Reviews     JSONField   `gorm:"type:json"`
	Tags        StringSlice `gorm:"type:json"`

	ImageURL string `gorm:"type:text"`
	VideoURL string `gorm:"type:text"`
	Tips     string `gorm:"type:text"`
	Pairing  string `gorm:"type:text"`

	Status      string     `gorm:"type:varchar(20);default:'draft';index"`
	PublishedAt *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

// CategoryModel represents the GORM model for browsing categories
type CategoryModel struct {
	ID        string `gorm:"type:varchar(100);primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	ImageURL  string `gorm:"type:text"`
	SortOrder int    `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoryModel represents the GORM model for web stories
type StoryModel struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	RecipeID  string    `gorm:"type:varchar(100);not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Slides    JSONField `gorm:"type:json"`
	CreatedAt time.Time `gorm:"index"`
}

// SettingsModel represents the singleton site settings row
type SettingsModel struct {
	ID          int    `gorm:"primaryKey"`
	SiteName    string `gorm:"type:varchar(255)"`
	Tagline     string `gorm:"type:varchar(255)"`
	LogoURL     string `gorm:"type:text"`
	ContactMail string `gorm:"type:varchar(255)"`

	Social   JSONField `gorm:"type:json"`
	Ads      JSONField `gorm:"type:json"`
	Webhooks JSONField `gorm:"type:json"`

	HeroRecipeIDs             StringSlice `gorm:"type:json"`
	SpecialCollectionCategory string      `gorm:"type:varchar(100)"`
	Banners                   JSONField   `gorm:"type:json"`

	UpdatedAt time.Time
}

// DietPlanModel represents the GORM model for diet plan templates
type DietPlanModel struct {
	ID          string    `gorm:"type:varchar(100);primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Duration    string    `gorm:"type:varchar(50)"`
	Level       string    `gorm:"type:varchar(50)"`
	Goal        string    `gorm:"type:varchar(255)"`
	ImageURL    string    `gorm:"type:text"`
	Structure   JSONField `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MealPlanModel represents an applied weekly plan, keyed by week id
type MealPlanModel struct {
	WeekID    string    `gorm:"type:varchar(20);primaryKey"`
	Days      JSONField `gorm:"type:json"`
	UpdatedAt time.Time
}

// SuggestionModel represents the GORM model for reader suggestions
type SuggestionModel struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	DishName    string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);default:'new';index"`
	CreatedAt   time.Time `gorm:"index"`
}

// SubscriberModel represents a newsletter subscriber
type SubscriberModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// JSONField custom type for handling JSON fields. The zero value encodes
// as null so list-shaped and object-shaped payloads both roundtrip.
type JSONField json.RawMessage

// Scan implements the sql.Scanner interface
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[:0], v...)
		return nil
	case string:
		*j = JSONField(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// MarshalJSON implements json.Marshaler
func (j JSONField) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler
func (j *JSONField) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// BeforeCreate hook for StoryModel
func (s *StoryModel) BeforeCreate(tx *gormlib.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate hook for SuggestionModel
func (s *SuggestionModel) BeforeCreate(tx *gormlib.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate hook for SubscriberModel
func (s *SubscriberModel) BeforeCreate(tx *gormlib.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (CategoryModel) TableName() string {
	return "categories"
}

func (StoryModel) TableName() string {
	return "web_stories"
}

func (SettingsModel) TableName() string {
	return "site_settings"
}

func (DietPlanModel) TableName() string {
	return "diet_plans"
}

func (MealPlanModel) TableName() string {
	return "meal_plans"
}

func (SuggestionModel) TableName() string {
	return "suggestions"
}

func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&CategoryModel{},
		&StoryModel{},
		&SettingsModel{},
		&DietPlanModel{},
		&MealPlanModel{},
		&SuggestionModel{},
		&SubscriberModel{},
	}
}
