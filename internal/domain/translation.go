// File: internal/domain/translation.go
package domain

import "time"

// TranslationRecord keeps one served translation for later review.
type TranslationRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Text        string    `gorm:"not null" json:"text"`
	Direction   string    `gorm:"size:32;index" json:"direction"`
	Translation string    `json:"translation"`
	Verified    bool      `json:"verified"`
	Score       *int      `json:"score,omitempty"`
	Label       string    `gorm:"size:32" json:"label,omitempty"`
	Engine      string    `gorm:"size:32" json:"engine"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
