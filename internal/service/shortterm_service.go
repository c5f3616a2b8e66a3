package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Money-Manager-Backend/internal/analytics"
	"github.com/ndewijer/Money-Manager-Backend/internal/api/request"
	"github.com/ndewijer/Money-Manager-Backend/internal/events"
	"github.com/ndewijer/Money-Manager-Backend/internal/model"
	"github.com/ndewijer/Money-Manager-Backend/internal/repository"
)

// ShortTermService serves subscriptions, account balances, credit cards and
// the short-term dashboard built on top of them.
type ShortTermService struct {
	transactionRepo  *repository.TransactionRepository
	subscriptionRepo *repository.SubscriptionRepository
	accountRepo      *repository.AccountRepository
	creditCardRepo   *repository.CreditCardRepository
	publisher        events.Publisher
	logger           *slog.Logger
}

// NewShortTermService creates a new ShortTermService with the provided repository dependencies.
func NewShortTermService(
	transactionRepo *repository.TransactionRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	accountRepo *repository.AccountRepository,
	creditCardRepo *repository.CreditCardRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *ShortTermService {
	return &ShortTermService{
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		accountRepo:      accountRepo,
		creditCardRepo:   creditCardRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// SubscriptionSummary is the subscription block of the dashboard.
type SubscriptionSummary struct {
	MonthlyCost   decimal.Decimal                  `json:"monthlyCost"`
	Upcoming      []analytics.UpcomingSubscription `json:"upcoming"`
	Subscriptions []model.Subscription             `json:"subscriptions"`
}

// AccountSummary is the account block of the dashboard.
type AccountSummary struct {
	TotalBalance decimal.Decimal        `json:"totalBalance"`
	Accounts     []model.AccountBalance `json:"accounts"`
}

// CreditCardOverview is the credit card block of the dashboard.
type CreditCardOverview struct {
	analytics.CreditCardSummary
	Cards []model.CreditCard `json:"cards"`
}

// Dashboard is everything the short-term page shows.
type Dashboard struct {
	Spending      analytics.SpendingSummary `json:"spending"`
	Subscriptions SubscriptionSummary       `json:"subscriptions"`
	Accounts      AccountSummary            `json:"accounts"`
	CreditCards   CreditCardOverview        `json:"creditCards"`
}

// Dashboard loads transactions of the current and previous window along
// with every subscription, account and card, and composes the dashboard
// for period p at now. The four loads run concurrently.
func (s *ShortTermService) Dashboard(ctx context.Context, p analytics.Period, now time.Time) (Dashboard, error) {
	windows := analytics.ComputeWindows(p, now)

	var (
		transactions  []model.SpendingTransaction
		subscriptions []model.Subscription
		accounts      []model.AccountBalance
		cards         []model.CreditCard
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.ListBetween(gctx, windows.Previous.Start, windows.Current.End)
		return err
	})
	g.Go(func() error {
		var err error
		subscriptions, err = s.subscriptionRepo.ListSubscriptions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.accountRepo.ListAccounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.creditCardRepo.ListCreditCards(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	return Dashboard{
		Spending: analytics.SummarizeSpending(ToAnalyticsTransactions(transactions), p, now),
		Subscriptions: SubscriptionSummary{
			MonthlyCost:   analytics.MonthlySubscriptionCost(subscriptions),
			Upcoming:      analytics.UpcomingSubscriptions(subscriptions, now, analytics.UpcomingWindowDays),
			Subscriptions: subscriptions,
		},
		Accounts: AccountSummary{
			TotalBalance: analytics.TotalAccountBalance(accounts),
			Accounts:     accounts,
		},
		CreditCards: CreditCardOverview{
			CreditCardSummary: analytics.SummarizeCreditCards(cards),
			Cards:             cards,
		},
	}, nil
}

// ToAnalyticsTransactions converts stored transactions for the aggregator.
func ToAnalyticsTransactions(in []model.SpendingTransaction) []analytics.Transaction {
	out := make([]analytics.Transaction, len(in))
	for i, tx := range in {
		out[i] = analytics.Transaction{
			ID:          tx.ID,
			Date:        tx.Date,
			Category:    tx.Category,
			Amount:      tx.Amount,
			Description: tx.Description,
		}
	}
	return out
}

// ListSubscriptions returns every subscription.
func (s *ShortTermService) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	return s.subscriptionRepo.ListSubscriptions(ctx)
}

// CreateSubscription stores a validated subscription. Status defaults to active.
func (s *ShortTermService) CreateSubscription(ctx context.Context, req request.CreateSubscriptionRequest) (*model.Subscription, error) {
	nextBilling, err := parseOptionalDate(req.NextBilling)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "active"
	}

	sub := &model.Subscription{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Category:     strings.TrimSpace(req.Category),
		Amount:       req.Amount.Decimal,
		BillingCycle: req.BillingCycle,
		NextBilling:  nextBilling,
		Icon:         req.Icon,
		Status:       status,
	}

	if err := s.subscriptionRepo.InsertSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.SubscriptionCreated, sub.ID, sub))
	return sub, nil
}

// ListAccounts returns every account balance.
func (s *ShortTermService) ListAccounts(ctx context.Context) ([]model.AccountBalance, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// CreateAccount stores a validated account. Type defaults to checking.
func (s *ShortTermService) CreateAccount(ctx context.Context, req request.CreateAccountRequest) (*model.AccountBalance, error) {
	lastUpdated, err := parseOptionalDate(req.LastUpdated)
	if err != nil {
		return nil, err
	}

	accountType := req.Type
	if accountType == "" {
		accountType = model.AccountChecking
	}

	account := &model.AccountBalance{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		Institution:   req.Institution,
		Type:          accountType,
		Balance:       req.Balance.Decimal,
		LastUpdated:   lastUpdated,
		AccountNumber: req.AccountNumber,
		APY:           req.APY,
		Icon:          req.Icon,
	}

	if err := s.accountRepo.InsertAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.AccountCreated, account.ID, account))
	return account, nil
}

// ListCreditCards returns every credit card.
func (s *ShortTermService) ListCreditCards(ctx context.Context) ([]model.CreditCard, error) {
	return s.creditCardRepo.ListCreditCards(ctx)
}

// CreateCreditCard stores a validated credit card.
func (s *ShortTermService) CreateCreditCard(ctx context.Context, req request.CreateCreditCardRequest) (*model.CreditCard, error) {
	card := &model.CreditCard{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(req.Name),
		Institution:      req.Institution,
		Type:             req.Type,
		LastFour:         req.LastFour,
		CurrentBalance:   req.CurrentBalance.Decimal,
		CreditLimit:      req.CreditLimit,
		PointsBalance:    req.PointsBalance,
		PointsName:       req.PointsName,
		PointsValue:      req.PointsValue,
		CashbackRate:     req.CashbackRate,
		RewardsThisMonth: req.RewardsThisMonth,
		CashbackEarned:   req.CashbackEarned,
		Icon:             req.Icon,
		Color:            req.Color,
	}

	if err := s.creditCardRepo.InsertCreditCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.CreditCardCreated, card.ID, card))
	return card, nil
}
