package models

// AssetPreference is the user's choice of which asset classes to receive
// recommendations for.
type AssetPreference string

const (
	AssetPreferenceCrypto AssetPreference = "crypto"
	AssetPreferenceStocks AssetPreference = "stocks"
	AssetPreferenceBoth   AssetPreference = "both"
)

// IncludesStocks reports whether the selector covers stock recommendations.
func (a AssetPreference) IncludesStocks() bool {
	return a == AssetPreferenceStocks || a == AssetPreferenceBoth
}

// IncludesCrypto reports whether the selector covers crypto recommendations.
func (a AssetPreference) IncludesCrypto() bool {
	return a == AssetPreferenceCrypto || a == AssetPreferenceBoth
}

// Investment horizons. The horizon changes recommendation reasoning text,
// not the numeric computation.
const (
	InvestmentTypeDayTrade = "Day Trade"
	InvestmentTypeLongTerm = "Long-Term"
)

// Preference list size limits.
const (
	MaxIndustries       = 3
	MaxCryptocurrencies = 5
)

// UserPreference stores a user's asset preferences, one row per user.
// The list fields are typed slices serialized to JSON only at the storage
// boundary, so malformed stored values can never reach business logic.
type UserPreference struct {
	Base
	UserID             string          `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	PreferredAssetType AssetPreference `gorm:"not null" json:"preferred_asset_type"`
	InvestmentType     string          `json:"investment_type,omitempty"`
	Industries         []string        `gorm:"serializer:json" json:"industries"`
	Cryptocurrencies   []string        `gorm:"serializer:json" json:"cryptocurrencies"`
}

// Horizon returns the preference's investment type, defaulting to long-term
// when none was chosen.
func (p *UserPreference) Horizon() string {
	if p.InvestmentType == "" {
		return InvestmentTypeLongTerm
	}
	return p.InvestmentType
}
