package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/zisan5910/zisan-trader-pro/internal/config"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"github.com/zisan5910/zisan-trader-pro/pkg/report"
)

// ReportService aggregates the sales and banking ledgers into period
// reports, the dashboard view and spreadsheet exports.
type ReportService struct {
	saleRepo     repository.SaleRepository
	bankingRepo  repository.BankingRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ledgerCfg    *config.LedgerConfig
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	bankingRepo repository.BankingRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	ledgerCfg *config.LedgerConfig,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		bankingRepo:  bankingRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledgerCfg:    ledgerCfg,
	}
}

// PeriodReport is the aggregate view of one reporting window, amounts in cents
type PeriodReport struct {
	From        time.Time     `json:"from"`
	To          time.Time     `json:"to"`
	Totals      ledger.Totals `json:"-"`
	TotalIncome int64         `json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r PeriodReport) MarshalJSON() ([]byte, error) {
	type Alias PeriodReport
	return json.Marshal(&struct {
		Alias
		SalesAmount float64 `json:"sales_amount"`
		Profit      float64 `json:"profit"`
		DueAccrued  float64 `json:"due_accrued"`
		Commission  float64 `json:"commission"`
		CashIn      float64 `json:"cash_in"`
		CashOut     float64 `json:"cash_out"`
		Recharge    float64 `json:"recharge"`
		TotalIncome float64 `json:"total_income"`
		SaleCount   int     `json:"sale_count"`
		TxnCount    int     `json:"txn_count"`
	}{
		Alias:       Alias(r),
		SalesAmount: float64(r.Totals.SalesAmount) / 100,
		Profit:      float64(r.Totals.Profit) / 100,
		DueAccrued:  float64(r.Totals.DueAccrued) / 100,
		Commission:  float64(r.Totals.Commission) / 100,
		CashIn:      float64(r.Totals.CashIn) / 100,
		CashOut:     float64(r.Totals.CashOut) / 100,
		Recharge:    float64(r.Totals.Recharge) / 100,
		TotalIncome: float64(r.TotalIncome) / 100,
		SaleCount:   r.Totals.SaleCount,
		TxnCount:    r.Totals.TxnCount,
	})
}

func (s *ReportService) buildReport(ctx context.Context, from, to time.Time) (*PeriodReport, []entity.Sale, []entity.BankingTransaction, error) {
	sales, err := s.saleRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, nil, nil, err
	}
	txns, err := s.bankingRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	saleSummaries := make([]ledger.SaleSummary, len(sales))
	for i, sale := range sales {
		saleSummaries[i] = ledger.SaleSummary{Total: sale.Total, Profit: sale.Profit, Due: sale.Due}
	}
	txnSummaries := make([]ledger.TxnSummary, len(txns))
	for i, t := range txns {
		txnSummaries[i] = ledger.TxnSummary{Type: t.Type, Amount: t.Amount, Commission: t.Commission}
	}

	totals := ledger.Aggregate(saleSummaries, txnSummaries)
	return &PeriodReport{
		From:        from,
		To:          to,
		Totals:      totals,
		TotalIncome: totals.TotalIncome(),
	}, sales, txns, nil
}

// Report aggregates both ledgers over an arbitrary window
func (s *ReportService) Report(ctx context.Context, from, to time.Time) (*PeriodReport, error) {
	rep, _, _, err := s.buildReport(ctx, from, to)
	return rep, err
}

// DailyReport aggregates both ledgers over one calendar day
func (s *ReportService) DailyReport(ctx context.Context, day time.Time) (*PeriodReport, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.Report(ctx, from, from.AddDate(0, 0, 1))
}

// MonthlyReport aggregates both ledgers over one calendar month
func (s *ReportService) MonthlyReport(ctx context.Context, year int, month time.Month, loc *time.Location) (*PeriodReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return s.Report(ctx, from, from.AddDate(0, 1, 0))
}

// Dashboard is the landing view: today's trade, the wallet balance and the
// alerts that need attention.
type Dashboard struct {
	Today            *PeriodReport     `json:"today"`
	BankingSummary   *BankingSummary   `json:"banking"`
	LowStockProducts []entity.Product  `json:"low_stock_products"`
	DueCustomers     []entity.Customer `json:"due_customers"`
}

// GetDashboard assembles the dashboard for the current day
func (s *ReportService) GetDashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	today, _, txns, err := s.buildReport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	balance, err := s.bankingRepo.CurrentBalance(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx, s.ledgerCfg.LowStockDefault)
	if err != nil {
		return nil, err
	}

	dueCustomers, err := s.customerRepo.ListWithDue(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Today: today,
		BankingSummary: &BankingSummary{
			Balance:    balance,
			CashIn:     today.Totals.CashIn,
			CashOut:    today.Totals.CashOut,
			Recharge:   today.Totals.Recharge,
			Commission: today.Totals.Commission,
			TxnCount:   len(txns),
		},
		LowStockProducts: lowStock,
		DueCustomers:     dueCustomers,
	}, nil
}

// ExportExcel renders both ledgers of a window into an xlsx workbook
func (s *ReportService) ExportExcel(ctx context.Context, from, to time.Time) ([]byte, error) {
	rep, sales, txns, err := s.buildReport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := []report.SummaryRow{
		{Label: "Sales amount", Value: float64(rep.Totals.SalesAmount) / 100},
		{Label: "Profit", Value: float64(rep.Totals.Profit) / 100},
		{Label: "Due accrued", Value: float64(rep.Totals.DueAccrued) / 100},
		{Label: "Commission", Value: float64(rep.Totals.Commission) / 100},
		{Label: "Total income", Value: float64(rep.TotalIncome) / 100},
	}

	saleRows := make([]report.SaleRow, len(sales))
	for i, sale := range sales {
		saleRows[i] = report.SaleRow{
			InvoiceNo:    sale.InvoiceNo,
			CustomerName: sale.CustomerName,
			CreatedAt:    sale.CreatedAt,
			SubTotal:     float64(sale.SubTotal) / 100,
			Discount:     float64(sale.Discount) / 100,
			Total:        float64(sale.Total) / 100,
			Paid:         float64(sale.Paid) / 100,
			Due:          float64(sale.Due) / 100,
			Profit:       float64(sale.Profit) / 100,
		}
	}

	txnRows := make([]report.TxnRow, len(txns))
	for i, t := range txns {
		txnRows[i] = report.TxnRow{
			Sequence:     t.Sequence,
			Type:         t.Type.String(),
			Operator:     t.Operator,
			CreatedAt:    t.CreatedAt,
			Amount:       float64(t.Amount) / 100,
			Commission:   float64(t.Commission) / 100,
			BalanceAfter: float64(t.BalanceAfter) / 100,
		}
	}

	title := fmt.Sprintf("Trading report %s to %s",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	return report.BuildWorkbook(title, summary, saleRows, txnRows)
}

// CleanupExpiredSales purges sales past the retention window, looping in
// batches until nothing is left to remove. Returns the total purged.
func (s *ReportService) CleanupExpiredSales(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.ledgerCfg.RetentionDays)

	var total int64
	for {
		n, err := s.saleRepo.PurgeOlderThan(ctx, cutoff, s.ledgerCfg.CleanupBatchSize)
		if err != nil {
			return total, err
		}
		total += n
		if n == 0 {
			break
		}
	}

	if total > 0 {
		log.Printf("Retention cleanup removed %d sales older than %s", total, cutoff.Format("2006-01-02"))
	}
	return total, nil
}
