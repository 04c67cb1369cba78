package services

import (
	"testing"
	"time"

	"cryptoadvisor/internal/models"
	"cryptoadvisor/internal/testutil"
)

func TestGetPreferences(t *testing.T) {
	t.Run("returns_stored_preferences", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPreferences(t, db, user.ID, models.AssetPreferenceBoth, models.InvestmentTypeLongTerm,
			[]string{"Technology"}, []string{"bitcoin"})

		prefs, err := svc.GetPreferences(user.ID)
		testutil.AssertNoError(t, err)

		if prefs.PreferredAssetType != models.AssetPreferenceBoth {
			t.Errorf("expected asset type both, got %s", prefs.PreferredAssetType)
		}
		if len(prefs.Industries) != 1 || prefs.Industries[0] != "Technology" {
			t.Errorf("unexpected industries: %v", prefs.Industries)
		}
	})

	t.Run("not_found_when_unset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetPreferences(user.ID)
		testutil.AssertAppError(t, err, "PREFERENCES_NOT_FOUND")
	})
}

func TestSavePreferences(t *testing.T) {
	t.Run("creates_on_first_save", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		prefs, cleared, err := svc.SavePreferences(user.ID, PreferenceInput{
			PreferredAssetType: models.AssetPreferenceCrypto,
			InvestmentType:     models.InvestmentTypeDayTrade,
			Cryptocurrencies:   []string{"bitcoin", "solana"},
		})
		testutil.AssertNoError(t, err)

		if cleared {
			t.Error("first save must not report cleared recommendations")
		}
		if prefs.ID == "" {
			t.Error("expected generated preference ID")
		}
		if prefs.InvestmentType != models.InvestmentTypeDayTrade {
			t.Errorf("unexpected investment type: %s", prefs.InvestmentType)
		}
	})

	t.Run("rejects_invalid_asset_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, _, err := svc.SavePreferences(user.ID, PreferenceInput{PreferredAssetType: "bonds"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_too_many_industries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, _, err := svc.SavePreferences(user.ID, PreferenceInput{
			PreferredAssetType: models.AssetPreferenceStocks,
			Industries:         []string{"Technology", "Healthcare", "Energy", "Finance"},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_too_many_cryptocurrencies", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, _, err := svc.SavePreferences(user.ID, PreferenceInput{
			PreferredAssetType: models.AssetPreferenceCrypto,
			Cryptocurrencies:   []string{"a", "b", "c", "d", "e", "f"},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("change_clears_recommendations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPreferences(t, db, user.ID, models.AssetPreferenceStocks, models.InvestmentTypeLongTerm,
			[]string{"Technology"}, nil)
		testutil.CreateTestRecommendation(t, db, user.ID, time.Now().Add(time.Hour))
		testutil.CreateTestRecommendation(t, db, user.ID, time.Now().Add(time.Hour))

		_, cleared, err := svc.SavePreferences(user.ID, PreferenceInput{
			PreferredAssetType: models.AssetPreferenceStocks,
			InvestmentType:     models.InvestmentTypeDayTrade, // only this changed
			Industries:         []string{"Technology"},
		})
		testutil.AssertNoError(t, err)

		if !cleared {
			t.Error("expected recommendations to be cleared")
		}
		var count int64
		db.Model(&models.Recommendation{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 remaining recommendations, got %d", count)
		}
	})

	t.Run("identical_save_keeps_recommendations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPreferences(t, db, user.ID, models.AssetPreferenceBoth, models.InvestmentTypeLongTerm,
			[]string{"Energy"}, []string{"bitcoin"})
		testutil.CreateTestRecommendation(t, db, user.ID, time.Now().Add(time.Hour))

		_, cleared, err := svc.SavePreferences(user.ID, PreferenceInput{
			PreferredAssetType: models.AssetPreferenceBoth,
			InvestmentType:     models.InvestmentTypeLongTerm,
			Industries:         []string{"Energy"},
			Cryptocurrencies:   []string{"bitcoin"},
		})
		testutil.AssertNoError(t, err)

		if cleared {
			t.Error("identical save must not clear recommendations")
		}
		var count int64
		db.Model(&models.Recommendation{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected recommendation to survive, got %d rows", count)
		}
	})

	t.Run("updates_in_place", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)
		original := testutil.CreateTestPreferences(t, db, user.ID, models.AssetPreferenceStocks, models.InvestmentTypeLongTerm, nil, nil)

		updated, _, err := svc.SavePreferences(user.ID, PreferenceInput{
			PreferredAssetType: models.AssetPreferenceCrypto,
			InvestmentType:     models.InvestmentTypeLongTerm,
			Cryptocurrencies:   []string{"ethereum"},
		})
		testutil.AssertNoError(t, err)

		if updated.ID != original.ID {
			t.Error("expected update to reuse the existing row")
		}
		var count int64
		db.Model(&models.UserPreference{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected single preference row, got %d", count)
		}
	})
}
