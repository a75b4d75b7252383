package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/enum"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"github.com/zisan5910/zisan-trader-pro/pkg/apperror"
)

// BankingService handles the mobile-banking commission ledger
type BankingService struct {
	bankingRepo     repository.BankingRepository
	settingsService *SettingsService
}

// NewBankingService creates a new banking service
func NewBankingService(bankingRepo repository.BankingRepository, settingsService *SettingsService) *BankingService {
	return &BankingService{
		bankingRepo:     bankingRepo,
		settingsService: settingsService,
	}
}

// CreateTransactionInput represents a new ledger entry
type CreateTransactionInput struct {
	Type     string
	Operator string
	Amount   float64
	Note     *string
}

func (s *BankingService) buildTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.BankingTransaction, error) {
	txnType := enum.TransactionType(input.Type)
	if !txnType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid transaction type")
	}
	operator := strings.ToLower(strings.TrimSpace(input.Operator))
	if operator == "" {
		return nil, apperror.NewBadRequestError("Operator is required")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	rates, err := s.settingsService.GetRateTable(ctx)
	if err != nil {
		return nil, err
	}

	amount := ledger.Cents(input.Amount)
	commission := ledger.Commission(amount, rates.Rate(operator, txnType))

	return &entity.BankingTransaction{
		Type:       txnType,
		Operator:   operator,
		Amount:     amount,
		Commission: commission,
		Note:       input.Note,
	}, nil
}

// CreateTransaction computes the commission from the active rate table and
// appends the entry to the ledger with its sequence and running balance.
func (s *BankingService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.BankingTransaction, error) {
	txn, err := s.buildTransaction(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.bankingRepo.Append(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction rewrites a ledger entry. The commission is recomputed
// against the current rate table and every running balance after the entry
// is refolded.
func (s *BankingService) UpdateTransaction(ctx context.Context, id uuid.UUID, input *CreateTransactionInput) (*entity.BankingTransaction, error) {
	existing, err := s.bankingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	txn, err := s.buildTransaction(ctx, input)
	if err != nil {
		return nil, err
	}
	txn.ID = existing.ID
	txn.Sequence = existing.Sequence

	if err := s.bankingRepo.UpdateAndReflow(ctx, txn); err != nil {
		return nil, err
	}
	return s.bankingRepo.GetByID(ctx, id)
}

// DeleteTransaction removes a ledger entry and refolds the balances of the
// entries that remain
func (s *BankingService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	existing, err := s.bankingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Transaction")
	}
	return s.bankingRepo.DeleteAndReflow(ctx, id)
}

// GetTransaction retrieves a ledger entry by ID
func (s *BankingService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.BankingTransaction, error) {
	txn, err := s.bankingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// ListTransactions retrieves ledger entries with filtering and pagination
func (s *BankingService) ListTransactions(ctx context.Context, params *repository.BankingFilterParams) ([]entity.BankingTransaction, int64, error) {
	return s.bankingRepo.List(ctx, params)
}

// BankingSummary is the day view of the ledger, amounts in cents
type BankingSummary struct {
	Balance    int64 `json:"-"`
	CashIn     int64 `json:"-"`
	CashOut    int64 `json:"-"`
	Recharge   int64 `json:"-"`
	Commission int64 `json:"-"`
	TxnCount   int   `json:"txn_count"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b BankingSummary) MarshalJSON() ([]byte, error) {
	type Alias BankingSummary
	return json.Marshal(&struct {
		Alias
		Balance    float64 `json:"balance"`
		CashIn     float64 `json:"cash_in"`
		CashOut    float64 `json:"cash_out"`
		Recharge   float64 `json:"recharge"`
		Commission float64 `json:"commission"`
	}{
		Alias:      Alias(b),
		Balance:    float64(b.Balance) / 100,
		CashIn:     float64(b.CashIn) / 100,
		CashOut:    float64(b.CashOut) / 100,
		Recharge:   float64(b.Recharge) / 100,
		Commission: float64(b.Commission) / 100,
	})
}

// Summarize aggregates the ledger over a day window
func (s *BankingService) Summarize(ctx context.Context, from, to time.Time) (*BankingSummary, error) {
	txns, err := s.bankingRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summaries := make([]ledger.TxnSummary, len(txns))
	for i, t := range txns {
		summaries[i] = ledger.TxnSummary{Type: t.Type, Amount: t.Amount, Commission: t.Commission}
	}
	totals := ledger.Aggregate(nil, summaries)

	balance, err := s.bankingRepo.CurrentBalance(ctx)
	if err != nil {
		return nil, err
	}

	return &BankingSummary{
		Balance:    balance,
		CashIn:     totals.CashIn,
		CashOut:    totals.CashOut,
		Recharge:   totals.Recharge,
		Commission: totals.Commission,
		TxnCount:   totals.TxnCount,
	}, nil
}
