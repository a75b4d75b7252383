package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/cache"
	"github.com/zisan5910/zisan-trader-pro/internal/config"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
)

// ---- in-memory fakes ----

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams, lowStockDefault float64) ([]entity.Product, int64, error) {
	all, _ := r.All(ctx)
	return all, int64(len(all)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context, lowStockDefault float64) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if ledger.IsLowStock(p.Quantity, p.QuantityAlert, lowStockDefault) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) All(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	payments  []*entity.Payment
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	all, _ := r.All(ctx)
	return all, int64(len(all)), nil
}

func (r *fakeCustomerRepo) ListWithDue(ctx context.Context) ([]entity.Customer, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		if c.TotalDue > 0 {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) All(ctx context.Context) ([]entity.Customer, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) ApplyPayment(ctx context.Context, payment *entity.Payment) (*entity.Customer, error) {
	if payment.CustomerID == nil {
		return nil, errors.New("payment requires a customer")
	}
	c, ok := r.customers[*payment.CustomerID]
	if !ok {
		return nil, errors.New("customer not found")
	}
	credited := payment.Amount
	if credited > c.TotalDue {
		credited = c.TotalDue
	}
	c.TotalDue = ledger.ApplyDue(c.TotalDue, -credited)
	r.payments = append(r.payments, payment)
	cp := *c
	return &cp, nil
}

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.CustomerID != nil && *p.CustomerID == customerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// fakeSaleRepo applies commits the way the real transaction does, against
// the fake product and customer stores.
type fakeSaleRepo struct {
	sales     map[uuid.UUID]*entity.Sale
	products  *fakeProductRepo
	customers *fakeCustomerRepo
	payments  []*entity.Payment
}

func newFakeSaleRepo(products *fakeProductRepo, customers *fakeCustomerRepo) *fakeSaleRepo {
	return &fakeSaleRepo{
		sales:     make(map[uuid.UUID]*entity.Sale),
		products:  products,
		customers: customers,
	}
}

func (r *fakeSaleRepo) Commit(ctx context.Context, commit *repository.SaleCommit) error {
	sale := commit.Sale
	if commit.ReplaceID != nil {
		sale.ID = *commit.ReplaceID
	} else if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	r.sales[sale.ID] = &cp

	for id, delta := range commit.StockDeltas {
		if p, ok := r.products.products[id]; ok {
			p.Quantity += delta
			if p.Quantity < 0 {
				p.Quantity = 0
			}
		}
	}
	for customerID, delta := range commit.DueDeltas {
		if c, ok := r.customers.customers[customerID]; ok {
			c.TotalDue = ledger.ApplyDue(c.TotalDue, delta)
		}
	}
	if commit.Payment != nil {
		r.payments = append(r.payments, commit.Payment)
	}
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListRange(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *fakeSaleRepo) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.sales, id)
	}
	return nil
}

func (r *fakeSaleRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	var purged int64
	for id, s := range r.sales {
		if s.CreatedAt.Before(cutoff) && purged < int64(batchSize) {
			delete(r.sales, id)
			purged++
		}
	}
	return purged, nil
}

// fakeBankingRepo reproduces the sequence and reflow semantics in memory
type fakeBankingRepo struct {
	txns []*entity.BankingTransaction
}

func (r *fakeBankingRepo) Append(ctx context.Context, txn *entity.BankingTransaction) error {
	var prevSeq, prevBalance int64
	if n := len(r.txns); n > 0 {
		prevSeq = r.txns[n-1].Sequence
		prevBalance = r.txns[n-1].BalanceAfter
	}
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	txn.Sequence = prevSeq + 1
	txn.BalanceAfter = ledger.NextBalance(prevBalance, txn.Type, txn.Amount)
	cp := *txn
	r.txns = append(r.txns, &cp)
	return nil
}

func (r *fakeBankingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.BankingTransaction, error) {
	for _, t := range r.txns {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBankingRepo) List(ctx context.Context, params *repository.BankingFilterParams) ([]entity.BankingTransaction, int64, error) {
	var out []entity.BankingTransaction
	for _, t := range r.txns {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBankingRepo) ListRange(ctx context.Context, from, to time.Time) ([]entity.BankingTransaction, error) {
	var out []entity.BankingTransaction
	for _, t := range r.txns {
		if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeBankingRepo) CurrentBalance(ctx context.Context) (int64, error) {
	if len(r.txns) == 0 {
		return 0, nil
	}
	return r.txns[len(r.txns)-1].BalanceAfter, nil
}

func (r *fakeBankingRepo) reflow() {
	summaries := make([]ledger.TxnSummary, len(r.txns))
	for i, t := range r.txns {
		summaries[i] = ledger.TxnSummary{Type: t.Type, Amount: t.Amount, Commission: t.Commission}
	}
	balances := ledger.FoldBalances(0, summaries)
	for i := range r.txns {
		r.txns[i].BalanceAfter = balances[i]
	}
}

func (r *fakeBankingRepo) UpdateAndReflow(ctx context.Context, txn *entity.BankingTransaction) error {
	for _, t := range r.txns {
		if t.ID == txn.ID {
			t.Type = txn.Type
			t.Operator = txn.Operator
			t.Amount = txn.Amount
			t.Commission = txn.Commission
			t.Note = txn.Note
			r.reflow()
			return nil
		}
	}
	return errors.New("transaction not found")
}

func (r *fakeBankingRepo) DeleteAndReflow(ctx context.Context, id uuid.UUID) error {
	for i, t := range r.txns {
		if t.ID == id {
			r.txns = append(r.txns[:i], r.txns[i+1:]...)
			r.reflow()
			return nil
		}
	}
	return errors.New("transaction not found")
}

type fakeSettingsRepo struct {
	settings *entity.CommissionSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.CommissionSettings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, s *entity.CommissionSettings) error {
	r.settings = s
	return nil
}

// ---- fixtures ----

func testLedgerConfig() *config.LedgerConfig {
	return &config.LedgerConfig{
		LowStockDefault:  5,
		RetentionDays:    40,
		CleanupBatchSize: 500,
	}
}

func seedProduct(t *testing.T, repo *fakeProductRepo, name string, qty, buy, sell float64) uuid.UUID {
	t.Helper()
	p := &entity.Product{ID: uuid.New(), Name: name, Code: "C-" + name, Unit: "pcs", Quantity: qty}
	p.SetBuyingPriceFromDecimal(buy)
	p.SetSellingPriceFromDecimal(sell)
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p.ID
}

func seedCustomer(t *testing.T, repo *fakeCustomerRepo, name string, due int64) uuid.UUID {
	t.Helper()
	c := &entity.Customer{ID: uuid.New(), Name: name, TotalDue: due}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c.ID
}

// ---- sale service ----

func TestCreateSaleComputesTotalsAndMovesStock(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	svc := NewSaleService(sales, products, customers)

	productID := seedProduct(t, products, "rice", 50, 60, 75)
	customerID := seedCustomer(t, customers, "Karim", 0)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerID: &customerID,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 2}},
		Discount:   10,
		Paid:       100,
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	// 2 x 75.00 - 10.00 discount = 140.00 total, 100.00 paid leaves 40.00 due
	if sale.Total != 14000 {
		t.Fatalf("expected total 14000 cents, got %d", sale.Total)
	}
	if sale.Due != 4000 {
		t.Fatalf("expected due 4000 cents, got %d", sale.Due)
	}
	// margin 2 x 15.00 minus 10.00 discount
	if sale.Profit != 2000 {
		t.Fatalf("expected profit 2000 cents, got %d", sale.Profit)
	}

	p, _ := products.GetByID(context.Background(), productID)
	if p.Quantity != 48 {
		t.Fatalf("expected stock 48 after sale, got %v", p.Quantity)
	}

	c, _ := customers.GetByID(context.Background(), customerID)
	if c.TotalDue != 4000 {
		t.Fatalf("expected customer due 4000 cents, got %d", c.TotalDue)
	}

	if len(sales.payments) != 1 || sales.payments[0].Amount != 10000 {
		t.Fatalf("expected one payment of 10000 cents, got %+v", sales.payments)
	}
}

func TestCreateSaleRejectsDueWithoutCustomer(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	svc := NewSaleService(sales, products, customers)

	productID := seedProduct(t, products, "oil", 10, 150, 180)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		Items: []SaleItemInput{{ProductID: productID, Quantity: 1}},
		Paid:  100, // 80.00 short
	})
	if err == nil {
		t.Fatalf("expected cash sale with due to be rejected")
	}
}

func TestCreateSaleOverpaymentAddsToProfit(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	svc := NewSaleService(sales, products, customers)

	productID := seedProduct(t, products, "salt", 20, 20, 30)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		Items: []SaleItemInput{{ProductID: productID, Quantity: 1}},
		Paid:  35,
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}
	if sale.Overpayment != 500 {
		t.Fatalf("expected overpayment 500 cents, got %d", sale.Overpayment)
	}
	// 10.00 margin plus 5.00 kept overpayment
	if sale.Profit != 1500 {
		t.Fatalf("expected profit 1500 cents, got %d", sale.Profit)
	}
	if sale.Due != 0 {
		t.Fatalf("expected no due, got %d", sale.Due)
	}
}

func TestUpdateSaleReversesOriginalStockAndDue(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	svc := NewSaleService(sales, products, customers)

	productID := seedProduct(t, products, "flour", 30, 40, 55)
	customerID := seedCustomer(t, customers, "Rahim", 0)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerID: &customerID,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 4}},
		Paid:       100,
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	// 4 x 55.00 = 220.00, paid 100.00 -> due 120.00, stock 26
	updated, err := svc.UpdateSale(context.Background(), sale.ID, &CreateSaleInput{
		CustomerID: &customerID,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 2}},
		Paid:       110,
	})
	if err != nil {
		t.Fatalf("update sale failed: %v", err)
	}

	// 2 x 55.00 = 110.00 fully paid
	if updated.Due != 0 {
		t.Fatalf("expected no due after edit, got %d", updated.Due)
	}

	p, _ := products.GetByID(context.Background(), productID)
	if p.Quantity != 28 {
		t.Fatalf("expected stock 28 after edit returned 2 units, got %v", p.Quantity)
	}

	c, _ := customers.GetByID(context.Background(), customerID)
	if c.TotalDue != 0 {
		t.Fatalf("expected due cleared after edit, got %d", c.TotalDue)
	}
}

func TestUpdateSaleMovesDueBetweenCustomers(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	svc := NewSaleService(sales, products, customers)

	productID := seedProduct(t, products, "flour", 30, 40, 55)
	oldCustomer := seedCustomer(t, customers, "Rahim", 0)
	newCustomer := seedCustomer(t, customers, "Karim", 0)

	// 4 x 55.00 = 220.00, paid 100.00 leaves 120.00 due on Rahim
	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerID: &oldCustomer,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 4}},
		Paid:       100,
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	if _, err := svc.UpdateSale(context.Background(), sale.ID, &CreateSaleInput{
		CustomerID: &newCustomer,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 4}},
		Paid:       100,
	}); err != nil {
		t.Fatalf("update sale failed: %v", err)
	}

	old, _ := customers.GetByID(context.Background(), oldCustomer)
	if old.TotalDue != 0 {
		t.Fatalf("expected old customer due lifted, got %d", old.TotalDue)
	}
	moved, _ := customers.GetByID(context.Background(), newCustomer)
	if moved.TotalDue != 12000 {
		t.Fatalf("expected due 12000 cents on new customer, got %d", moved.TotalDue)
	}

	// Both due moves ride inside the sale commit; no standalone payment
	// settles the old customer out of band.
	if len(customers.payments) != 0 {
		t.Fatalf("expected no out-of-band payments, got %d", len(customers.payments))
	}
}

func TestUpdateSaleLogsPaymentDelta(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	svc := NewSaleService(sales, products, customers)

	productID := seedProduct(t, products, "flour", 30, 40, 55)
	customerID := seedCustomer(t, customers, "Rahim", 0)

	// 2 x 55.00 = 110.00, paid 100.00 retains 100.00
	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CustomerID: &customerID,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 2}},
		Paid:       100,
	})
	if err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	// Paying off in the edit retains 10.00 more
	if _, err := svc.UpdateSale(context.Background(), sale.ID, &CreateSaleInput{
		CustomerID: &customerID,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 2}},
		Paid:       110,
	}); err != nil {
		t.Fatalf("first edit failed: %v", err)
	}
	if n := len(sales.payments); n != 2 || sales.payments[1].Amount != 1000 {
		t.Fatalf("expected compensating payment of 1000 cents, got %+v", sales.payments)
	}

	// Paying down retains 60.00 less; the compensating entry goes negative
	if _, err := svc.UpdateSale(context.Background(), sale.ID, &CreateSaleInput{
		CustomerID: &customerID,
		Items:      []SaleItemInput{{ProductID: productID, Quantity: 2}},
		Paid:       50,
	}); err != nil {
		t.Fatalf("second edit failed: %v", err)
	}
	if n := len(sales.payments); n != 3 || sales.payments[2].Amount != -6000 {
		t.Fatalf("expected compensating payment of -6000 cents, got %+v", sales.payments)
	}

	// Sum of payments equals the money the sale finally retained
	var sum int64
	for _, p := range sales.payments {
		sum += p.Amount
	}
	final, _ := sales.GetByID(context.Background(), sale.ID)
	if sum != final.Total-final.Due {
		t.Fatalf("payment log sums to %d, sale retained %d", sum, final.Total-final.Due)
	}
}

// ---- customer service ----

func TestCollectPaymentCapsAtOutstandingDue(t *testing.T) {
	customers := newFakeCustomerRepo()
	payments := &fakePaymentRepo{}
	svc := NewCustomerService(customers, payments)

	customerID := seedCustomer(t, customers, "Jamal", 5000)

	customer, err := svc.CollectPayment(context.Background(), &CollectPaymentInput{
		CustomerID: customerID,
		Amount:     80, // 8000 cents against 5000 due
	})
	if err != nil {
		t.Fatalf("collect payment failed: %v", err)
	}
	if customer.TotalDue != 0 {
		t.Fatalf("expected due cleared, got %d", customer.TotalDue)
	}
	if len(customers.payments) != 1 {
		t.Fatalf("expected one payment logged, got %d", len(customers.payments))
	}
}

func TestImportCustomersSkipsRowsWithoutName(t *testing.T) {
	customers := newFakeCustomerRepo()
	svc := NewCustomerService(customers, &fakePaymentRepo{})

	result, err := svc.ImportCustomers(context.Background(), []CustomerExportRow{
		{Name: "Valid One", TotalDue: 12.5},
		{Name: ""},
		{Name: "Valid Two", TotalDue: -3}, // negative due clamps to zero
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Fatalf("expected 2 imported and 1 skipped, got %+v", result)
	}

	all, _ := customers.All(context.Background())
	for _, c := range all {
		if c.TotalDue < 0 {
			t.Fatalf("imported customer has negative due: %+v", c)
		}
	}
}

// ---- product service ----

func TestImportProductsSkipsRowsWithoutName(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, testLedgerConfig())

	result, err := svc.ImportProducts(context.Background(), []ProductExportRow{
		{Name: "Sugar", Code: "SUG-1", Quantity: 10, BuyingPrice: 50, SellingPrice: 60},
		{Code: "orphan-row"},
		{Name: "Tea", Code: "TEA-1", Quantity: 4, BuyingPrice: 200, SellingPrice: 250},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Fatalf("expected 2 imported and 1 skipped, got %+v", result)
	}
}

func TestImportProductsUpdatesExistingCode(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, testLedgerConfig())

	rows := []ProductExportRow{{Name: "Sugar", Code: "SUG-1", Quantity: 10, BuyingPrice: 50, SellingPrice: 60}}
	if _, err := svc.ImportProducts(context.Background(), rows); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	rows[0].Quantity = 25
	if _, err := svc.ImportProducts(context.Background(), rows); err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	all, _ := products.All(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected re-import to update in place, got %d products", len(all))
	}
	if all[0].Quantity != 25 {
		t.Fatalf("expected quantity 25 after re-import, got %v", all[0].Quantity)
	}
}

// ---- banking service ----

func newTestBankingService(bankingRepo *fakeBankingRepo, settingsRepo *fakeSettingsRepo) *BankingService {
	settings := NewSettingsService(settingsRepo, cache.NoopRateCache{})
	return NewBankingService(bankingRepo, settings)
}

func TestCreateTransactionAppliesCommissionAndBalance(t *testing.T) {
	bankingRepo := &fakeBankingRepo{}
	svc := newTestBankingService(bankingRepo, &fakeSettingsRepo{})

	txn, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type:     "cash_out",
		Operator: "bKash", // case-insensitive operator match
		Amount:   1000,
	})
	if err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}

	// 1000.00 x 0.0185 = 18.50 commission, balance goes negative territory
	// is fine for cash_out against an empty float
	if txn.Commission != 1850 {
		t.Fatalf("expected commission 1850 cents, got %d", txn.Commission)
	}
	if txn.Sequence != 1 {
		t.Fatalf("expected sequence 1, got %d", txn.Sequence)
	}
	if txn.BalanceAfter != -100000 {
		t.Fatalf("expected balance -100000 cents, got %d", txn.BalanceAfter)
	}
}

func TestUpdateTransactionReflowsBalances(t *testing.T) {
	bankingRepo := &fakeBankingRepo{}
	svc := newTestBankingService(bankingRepo, &fakeSettingsRepo{})

	first, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "cash_in", Operator: "bkash", Amount: 50,
	})
	if err != nil {
		t.Fatalf("first transaction failed: %v", err)
	}
	second, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "cash_out", Operator: "bkash", Amount: 10,
	})
	if err != nil {
		t.Fatalf("second transaction failed: %v", err)
	}
	if second.BalanceAfter != 4000 {
		t.Fatalf("expected balance 4000 cents, got %d", second.BalanceAfter)
	}

	// Shrink the first deposit; the second balance must refold
	if _, err := svc.UpdateTransaction(context.Background(), first.ID, &CreateTransactionInput{
		Type: "cash_in", Operator: "bkash", Amount: 30,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	refreshed, _ := bankingRepo.GetByID(context.Background(), second.ID)
	if refreshed.BalanceAfter != 2000 {
		t.Fatalf("expected refolded balance 2000 cents, got %d", refreshed.BalanceAfter)
	}
}

func TestDeleteTransactionReflowsBalances(t *testing.T) {
	bankingRepo := &fakeBankingRepo{}
	svc := newTestBankingService(bankingRepo, &fakeSettingsRepo{})

	first, _ := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "cash_in", Operator: "nagad", Amount: 100,
	})
	second, _ := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "cash_in", Operator: "nagad", Amount: 40,
	})

	if err := svc.DeleteTransaction(context.Background(), first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	refreshed, _ := bankingRepo.GetByID(context.Background(), second.ID)
	if refreshed.BalanceAfter != 4000 {
		t.Fatalf("expected balance 4000 cents after delete, got %d", refreshed.BalanceAfter)
	}
}

func TestAppendAfterDeletingNewestReusesSequence(t *testing.T) {
	bankingRepo := &fakeBankingRepo{}
	svc := newTestBankingService(bankingRepo, &fakeSettingsRepo{})

	if _, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "cash_in", Operator: "nagad", Amount: 100,
	}); err != nil {
		t.Fatalf("first transaction failed: %v", err)
	}
	tail, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "cash_in", Operator: "nagad", Amount: 40,
	})
	if err != nil {
		t.Fatalf("second transaction failed: %v", err)
	}

	// Removing the tail frees its sequence number; the ledger must keep
	// accepting appends at that slot.
	if err := svc.DeleteTransaction(context.Background(), tail.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	next, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "cash_in", Operator: "nagad", Amount: 10,
	})
	if err != nil {
		t.Fatalf("append after tail delete failed: %v", err)
	}
	if next.Sequence != 2 {
		t.Fatalf("expected sequence 2 reused, got %d", next.Sequence)
	}
	if next.BalanceAfter != 11000 {
		t.Fatalf("expected balance 11000 cents, got %d", next.BalanceAfter)
	}
}

func TestCreateTransactionRejectsUnknownType(t *testing.T) {
	svc := newTestBankingService(&fakeBankingRepo{}, &fakeSettingsRepo{})

	_, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
		Type: "withdraw", Operator: "bkash", Amount: 10,
	})
	if err == nil {
		t.Fatalf("expected unknown transaction type to be rejected")
	}
}

// ---- settings service ----

func TestGetRateTableFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, cache.NoopRateCache{})

	table, err := svc.GetRateTable(context.Background())
	if err != nil {
		t.Fatalf("get rate table failed: %v", err)
	}
	if _, ok := table["bkash"]; !ok {
		t.Fatalf("expected default table to contain bkash")
	}

	rate := table.Rate("bkash", "cash_out")
	if got := ledger.Commission(100000, rate); got != 1850 {
		t.Fatalf("expected default bkash cash_out commission 1850 on 100000, got %d", got)
	}
}

func TestUpdateRateTableRejectsNegativeRates(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, cache.NoopRateCache{})

	table, _ := svc.GetRateTable(context.Background())
	rates := table["bkash"]
	rates.CashIn = rates.CashIn.Neg()
	table["bkash"] = rates

	if _, err := svc.UpdateRateTable(context.Background(), table); err == nil {
		t.Fatalf("expected negative rate to be rejected")
	}
}

// ---- report service ----

func TestCleanupExpiredSalesLoopsBatches(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	bankingRepo := &fakeBankingRepo{}

	cfg := testLedgerConfig()
	cfg.CleanupBatchSize = 2
	svc := NewReportService(sales, bankingRepo, products, customers, cfg)

	old := time.Now().AddDate(0, 0, -cfg.RetentionDays-1)
	for i := 0; i < 5; i++ {
		id := uuid.New()
		sales.sales[id] = &entity.Sale{ID: id, CreatedAt: old}
	}
	fresh := uuid.New()
	sales.sales[fresh] = &entity.Sale{ID: fresh, CreatedAt: time.Now()}

	purged, err := svc.CleanupExpiredSales(context.Background())
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if purged != 5 {
		t.Fatalf("expected 5 purged, got %d", purged)
	}
	if _, ok := sales.sales[fresh]; !ok {
		t.Fatalf("fresh sale must survive cleanup")
	}
}

func TestReportAggregatesBothLedgers(t *testing.T) {
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	sales := newFakeSaleRepo(products, customers)
	bankingRepo := &fakeBankingRepo{}
	svc := NewReportService(sales, bankingRepo, products, customers, testLedgerConfig())

	now := time.Now()
	id := uuid.New()
	sales.sales[id] = &entity.Sale{
		ID: id, Total: 20000, Profit: 5000, Due: 2000, CreatedAt: now,
	}
	bankingRepo.txns = append(bankingRepo.txns, &entity.BankingTransaction{
		ID: uuid.New(), Type: "cash_in", Operator: "bkash",
		Amount: 10000, Commission: 100, Sequence: 1, BalanceAfter: 10000,
		CreatedAt: now,
	})

	rep, err := svc.Report(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if rep.Totals.SalesAmount != 20000 {
		t.Fatalf("expected sales amount 20000, got %d", rep.Totals.SalesAmount)
	}
	if rep.TotalIncome != 5100 {
		t.Fatalf("expected total income 5100 (profit + commission), got %d", rep.TotalIncome)
	}
	if rep.Totals.DueAccrued != 2000 {
		t.Fatalf("expected due accrued 2000, got %d", rep.Totals.DueAccrued)
	}
}
