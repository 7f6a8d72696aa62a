// File: internal/domain/place.go
package domain

import (
	"strings"
	"time"
)

// Place is one knowledge-base record about a location in Morocco.
type Place struct {
	ID          uint      `gorm:"primarykey" json:"id,omitempty"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	SafetyTips  string    `json:"safety_tips" yaml:"safety_tips"`
	City        string    `gorm:"index" json:"city,omitempty" yaml:"city"`
	Category    string    `json:"category,omitempty" yaml:"category"`
	CreatedAt   time.Time `json:"-" yaml:"-"`
	UpdatedAt   time.Time `json:"-" yaml:"-"`
}

// SearchText is the lower-cased concatenation of every field, used by the
// offline keyword search.
func (p Place) SearchText() string {
	return strings.ToLower(strings.Join([]string{p.Name, p.Description, p.SafetyTips, p.City, p.Category}, " "))
}
