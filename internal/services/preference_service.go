package services

import (
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	apperrors "cryptoadvisor/internal/errors"
	"cryptoadvisor/internal/logger"
	"cryptoadvisor/internal/models"
)

// preferenceService handles user preference business logic.
type preferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new PreferenceServicer.
func NewPreferenceService(db *gorm.DB) PreferenceServicer {
	return &preferenceService{db: db}
}

// GetPreferences retrieves the preference record for a user.
func (s *preferenceService) GetPreferences(userID string) (*models.UserPreference, error) {
	var prefs models.UserPreference
	if err := s.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPreferencesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prefs, nil
}

// SavePreferences creates or overwrites the user's preference record.
// Any semantic change to asset type, investment type, industries, or
// cryptocurrencies invalidates the user's existing recommendations. The
// second return value reports whether recommendations were cleared.
func (s *preferenceService) SavePreferences(userID string, input PreferenceInput) (*models.UserPreference, bool, error) {
	if err := validatePreferenceInput(input); err != nil {
		return nil, false, err
	}

	var existing models.UserPreference
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		prefs := &models.UserPreference{
			UserID:             userID,
			PreferredAssetType: input.PreferredAssetType,
			InvestmentType:     input.InvestmentType,
			Industries:         input.Industries,
			Cryptocurrencies:   input.Cryptocurrencies,
		}
		if err := s.db.Create(prefs).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return prefs, false, nil

	case err != nil:
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	changed := existing.PreferredAssetType != input.PreferredAssetType ||
		existing.InvestmentType != input.InvestmentType ||
		!slices.Equal(existing.Industries, input.Industries) ||
		!slices.Equal(existing.Cryptocurrencies, input.Cryptocurrencies)

	if changed {
		logger.Get().Infow("preferences changed, clearing recommendations", "user_id", userID)
		if err := s.db.Where("user_id = ?", userID).Delete(&models.Recommendation{}).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	existing.PreferredAssetType = input.PreferredAssetType
	existing.InvestmentType = input.InvestmentType
	existing.Industries = input.Industries
	existing.Cryptocurrencies = input.Cryptocurrencies

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &existing, changed, nil
}

func validatePreferenceInput(input PreferenceInput) error {
	switch input.PreferredAssetType {
	case models.AssetPreferenceCrypto, models.AssetPreferenceStocks, models.AssetPreferenceBoth:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Preferred asset type is required and must be crypto, stocks, or both")
	}

	if input.InvestmentType != "" &&
		input.InvestmentType != models.InvestmentTypeDayTrade &&
		input.InvestmentType != models.InvestmentTypeLongTerm {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Investment type must be Day Trade or Long-Term")
	}

	if len(input.Industries) > models.MaxIndustries {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("Industries must be an array with max %d items", models.MaxIndustries))
	}

	if len(input.Cryptocurrencies) > models.MaxCryptocurrencies {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("Cryptocurrencies must be an array with max %d items", models.MaxCryptocurrencies))
	}

	return nil
}
