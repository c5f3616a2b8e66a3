package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/testutil"
)

func TestAssetService_CreateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("derives value from price and shares", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, nil)

		asset, err := svc.CreateAsset(ctx, request.CreateAssetRequest{
			Ticker:      " vti ",
			Name:        "Total Market",
			Type:        "ETF",
			BoughtPrice: decimal.NewNullDecimal(decimal.RequireFromString("250.125")),
			Shares:      decimal.NewNullDecimal(decimal.RequireFromString("3")),
			Countries:   "US, US, IE",
			Currency:    "usd",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if asset.Ticker != "VTI" || asset.Currency != "USD" {
			t.Errorf("Expected normalized ticker and currency, got %s %s", asset.Ticker, asset.Currency)
		}
		if !asset.Value.Equal(decimal.RequireFromString("750.38")) {
			t.Errorf("Expected value 750.38, got %s", asset.Value)
		}
		if asset.Countries != "US, IE" {
			t.Errorf("Expected deduplicated countries, got '%s'", asset.Countries)
		}
	})

	t.Run("keeps an explicit value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		publisher := &testutil.RecordingPublisher{}
		svc := testutil.NewTestAssetService(t, db, publisher)

		asset, err := svc.CreateAsset(ctx, request.CreateAssetRequest{
			Name:  "House",
			Value: decimal.NewNullDecimal(decimal.NewFromInt(350000)),
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !asset.Value.Equal(decimal.NewFromInt(350000)) {
			t.Errorf("Expected value 350000, got %s", asset.Value)
		}
		if got := publisher.Types(); len(got) != 1 || got[0] != events.AssetCreated {
			t.Errorf("Expected asset.created event, got %v", got)
		}
	})
}

func TestAssetService_UpdateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("re-derives value when shares change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, nil)
		existing := testutil.NewAsset().WithShares("10").WithValue("1000").Build(t, db)

		shares := decimal.NewFromInt(12)
		updated, err := svc.UpdateAsset(ctx, existing.ID, request.UpdateAssetRequest{Shares: &shares})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !updated.Value.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("Expected value 1200, got %s", updated.Value)
		}
	})

	t.Run("explicit value wins over derivation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, nil)
		existing := testutil.NewAsset().Build(t, db)

		shares := decimal.NewFromInt(1)
		value := decimal.NewFromInt(42)
		updated, err := svc.UpdateAsset(ctx, existing.ID, request.UpdateAssetRequest{Shares: &shares, Value: &value})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !updated.Value.Equal(value) {
			t.Errorf("Expected value 42, got %s", updated.Value)
		}
	})

	t.Run("name change leaves value alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, nil)
		existing := testutil.NewAsset().WithValue("1234.56").Build(t, db)

		name := "Renamed"
		updated, err := svc.UpdateAsset(ctx, existing.ID, request.UpdateAssetRequest{Name: &name})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !updated.Value.Equal(decimal.RequireFromString("1234.56")) {
			t.Errorf("Expected value 1234.56, got %s", updated.Value)
		}
	})

	t.Run("unknown asset is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db, nil)

		name := "x"
		_, err := svc.UpdateAsset(ctx, testutil.MakeID(), request.UpdateAssetRequest{Name: &name})
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

func TestAssetService_Breakdown(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db, nil)

	testutil.NewAsset().WithSector("Technology").WithValue("600").Build(t, db)
	testutil.NewAsset().WithSector("Health").WithValue("300").Build(t, db)
	testutil.NewAsset().WithSector("").WithValue("100").Build(t, db)

	b, err := svc.Breakdown(ctx, analytics.DimensionSector, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !b.Total.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected total 1000, got %s", b.Total)
	}
	if len(b.Slices) != 3 {
		t.Fatalf("Expected 3 slices, got %d", len(b.Slices))
	}
	if b.Slices[0].Label != "Technology" || !b.Slices[0].Percent.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected Technology at 60%%, got %s at %s", b.Slices[0].Label, b.Slices[0].Percent)
	}

	if _, err := svc.Breakdown(ctx, analytics.Dimension("planet"), 0); !errors.Is(err, analytics.ErrUnknownDimension) {
		t.Errorf("Expected ErrUnknownDimension, got %v", err)
	}
}

func TestAssetService_DeleteAsset(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db, nil)
	asset := testutil.NewAsset().Build(t, db)

	if err := svc.DeleteAsset(ctx, asset.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.GetAsset(ctx, asset.ID); !errors.Is(err, apperrors.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound after delete, got %v", err)
	}
}
