package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Money-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
	"github.com/ndewijer/Money-Manager-Backend/internal/testutil"
)

func TestAssetRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("lists assets in creation order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		first := testutil.NewAsset().WithName("First").Build(t, db)
		second := testutil.NewAsset().WithName("Second").Build(t, db)

		assets, err := repo.ListAssets(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(assets) != 2 {
			t.Fatalf("Expected 2 assets, got %d", len(assets))
		}
		if assets[0].ID != first.ID || assets[1].ID != second.ID {
			t.Errorf("Expected creation order, got %s, %s", assets[0].Name, assets[1].Name)
		}
	})

	t.Run("updates an asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		asset := testutil.NewAsset().Build(t, db)
		asset.Shares = decimal.RequireFromString("12.5")
		asset.Value = decimal.RequireFromString("1562.50")
		asset.Countries = "US, IE"

		if err := repo.UpdateAsset(ctx, &asset); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := repo.GetAsset(ctx, asset.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !got.Shares.Equal(asset.Shares) || !got.Value.Equal(asset.Value) {
			t.Errorf("Expected 12.5 shares worth 1562.50, got %s worth %s", got.Shares, got.Value)
		}
		if got.Countries != "US, IE" {
			t.Errorf("Expected countries 'US, IE', got '%s'", got.Countries)
		}
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)
		id := testutil.MakeID()

		if _, err := repo.GetAsset(ctx, id); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from get, got %v", err)
		}
		if err := repo.UpdateAsset(ctx, &model.Asset{ID: id}); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from update, got %v", err)
		}
		if err := repo.DeleteAsset(ctx, id); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound from delete, got %v", err)
		}
	})

	t.Run("deleting an asset removes its price history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAssetRepository(db)

		asset := testutil.NewAsset().Build(t, db)
		testutil.CreatePrice(t, db, asset, testutil.Date(2026, time.January, 5), "101")

		if err := repo.DeleteAsset(ctx, asset.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if n := testutil.CountRows(t, db, "portfolio_asset_price"); n != 0 {
			t.Errorf("Expected price history to be removed, got %d rows", n)
		}
	})
}

func TestPriceRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert replaces the row for the same day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		asset := testutil.NewAsset().WithShares("2").Build(t, db)
		day := testutil.Date(2026, time.January, 5)
		testutil.CreatePrice(t, db, asset, day, "100")
		testutil.CreatePrice(t, db, asset, day, "110")

		history, err := repo.GetAssetHistory(ctx, asset.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 point, got %d", len(history))
		}
		if !history[0].Price.Equal(decimal.RequireFromString("110")) {
			t.Errorf("Expected price 110, got %s", history[0].Price)
		}
		if !history[0].Value.Equal(decimal.RequireFromString("220")) {
			t.Errorf("Expected value 220, got %s", history[0].Value)
		}
	})

	t.Run("portfolio history sums every asset per day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		a := testutil.NewAsset().WithShares("1").Build(t, db)
		b := testutil.NewAsset().WithShares("3").Build(t, db)
		day1 := testutil.Date(2026, time.January, 5)
		day2 := testutil.Date(2026, time.January, 6)

		testutil.CreatePrice(t, db, a, day2, "10.10")
		testutil.CreatePrice(t, db, a, day1, "10")
		testutil.CreatePrice(t, db, b, day1, "20")

		history, err := repo.GetPortfolioHistory(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("Expected 2 days, got %d", len(history))
		}
		if !history[0].Date.Equal(day1) || !history[0].Value.Equal(decimal.RequireFromString("70")) {
			t.Errorf("Expected 70 on %v, got %s on %v", day1, history[0].Value, history[0].Date)
		}
		if !history[1].Value.Equal(decimal.RequireFromString("10.10")) {
			t.Errorf("Expected 10.10 on day two, got %s", history[1].Value)
		}
	})

	t.Run("empty upsert is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPriceRepository(db)

		if err := repo.UpsertPrices(ctx, nil); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}

func TestShortTermRepositories(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)

	testutil.CreateSubscription(t, db, "Streaming", "15.99")
	testutil.CreateAccount(t, db, model.AccountSavings, "5000")
	testutil.CreateCreditCard(t, db, "250", "2000")

	subs, err := repository.NewSubscriptionRepository(db).ListSubscriptions(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(subs) != 1 || subs[0].Name != "Streaming" || !subs[0].Amount.Equal(decimal.RequireFromString("15.99")) {
		t.Errorf("Expected one Streaming subscription at 15.99, got %+v", subs)
	}

	accounts, err := repository.NewAccountRepository(db).ListAccounts(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(accounts) != 1 || accounts[0].Type != model.AccountSavings {
		t.Errorf("Expected one savings account, got %+v", accounts)
	}
	if accounts[0].APY.Valid {
		t.Errorf("Expected APY to be unset, got %s", accounts[0].APY.Decimal)
	}

	cards, err := repository.NewCreditCardRepository(db).ListCreditCards(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("Expected one card, got %d", len(cards))
	}
	if !cards[0].CreditLimit.Valid || !cards[0].CreditLimit.Decimal.Equal(decimal.RequireFromString("2000")) {
		t.Errorf("Expected credit limit 2000, got %+v", cards[0].CreditLimit)
	}
	if cards[0].PointsBalance.Valid {
		t.Error("Expected points balance to be unset")
	}
}
