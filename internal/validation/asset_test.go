package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/validation"
)

func TestValidateCreateAsset(t *testing.T) {
	t.Run("accepts a ticker-only asset", func(t *testing.T) {
		req := request.CreateAssetRequest{Ticker: "AAPL", Currency: "USD"}
		if err := validation.ValidateCreateAsset(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects negative numbers and missing identity", func(t *testing.T) {
		req := request.CreateAssetRequest{
			Shares:   decimal.NewNullDecimal(decimal.NewFromInt(-1)),
			Currency: "DOLLAR",
		}
		fields := fieldErrors(t, validation.ValidateCreateAsset(req))
		for _, f := range []string{"name", "shares", "currency"} {
			if _, ok := fields[f]; !ok {
				t.Errorf("Expected error for %s, got %v", f, fields)
			}
		}
	})
}

func TestValidateUpdateAsset(t *testing.T) {
	if err := validation.ValidateUpdateAsset(request.UpdateAssetRequest{}); err == nil {
		t.Error("Expected error for empty update")
	}

	neg := decimal.NewFromInt(-5)
	fields := fieldErrors(t, validation.ValidateUpdateAsset(request.UpdateAssetRequest{Value: &neg}))
	if _, ok := fields["value"]; !ok {
		t.Errorf("Expected value error, got %v", fields)
	}

	name := "Apple"
	if err := validation.ValidateUpdateAsset(request.UpdateAssetRequest{Name: &name}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
