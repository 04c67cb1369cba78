package models

import (
	"time"

	"cryptoadvisor/internal/uuid"

	"gorm.io/gorm"
)

// AssetClass identifies which recommendation branch produced a row.
type AssetClass string

const (
	AssetClassStocks AssetClass = "stocks"
	AssetClassCrypto AssetClass = "crypto"
)

// RecommendationTTL is how long a generated recommendation stays active.
const RecommendationTTL = 24 * time.Hour

// Recommendation is a generated advisory row for a single asset.
// Rows are immutable after creation and deleted en masse when the owning
// user's preferences change or on explicit refresh, so there is no Base
// embed and no updated_at.
type Recommendation struct {
	ID                 string     `gorm:"type:uuid;primaryKey" json:"recommendation_id"`
	UserID             string     `gorm:"type:uuid;not null;index" json:"user_id"`
	AssetType          AssetClass `gorm:"not null" json:"asset_type"`
	AssetSymbol        string     `gorm:"not null" json:"asset_symbol"`
	AssetName          string     `gorm:"not null" json:"asset_name"`
	CurrentPrice       float64    `json:"current_price"`
	RecommendationType string     `gorm:"not null" json:"recommendation_type"`
	ConfidenceScore    float64    `json:"confidence_score"`
	Reasoning          string     `json:"reasoning"`
	NewsSummary        string     `json:"news_summary"`
	CoingeckoID        string     `json:"coingecko_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	ExpiresAt          time.Time  `gorm:"index" json:"expires_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
