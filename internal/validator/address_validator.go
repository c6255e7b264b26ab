package validator

import (
	"fmt"
	"strings"

	"paintingstore/internal/domain/model"
)

// 配送先の4項目はすべて必須。最初に空だった項目名を返す
func ValidateShippingAddress(a model.ShippingAddress) error {
	fields := []struct {
		name  string
		value string
	}{
		{"address", a.Address},
		{"city", a.City},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: shippingAddress.%s is required", ErrInvalidInput, f.name)
		}
	}
	return nil
}
