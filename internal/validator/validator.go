// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_preference", validateAssetPreference)
		_ = v.RegisterValidation("investment_type", validateInvestmentType)
		_ = v.RegisterValidation("asset_class", validateAssetClass)
	}
}

func validateAssetPreference(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "crypto", "stocks", "both":
		return true
	}
	return false
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Day Trade", "Long-Term":
		return true
	}
	return false
}

func validateAssetClass(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "stocks", "crypto":
		return true
	}
	return false
}
