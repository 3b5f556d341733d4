package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/internal/domain/enum"
	"github.com/jumapesa/billing-api/internal/domain/repository"
	"github.com/jumapesa/billing-api/internal/pdf"
	"github.com/jumapesa/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices      map[uuid.UUID]*entity.Invoice
	statuses      map[uuid.UUID]enum.InvoiceStatus
	notifications []*entity.Notification
	currencies    []*entity.Currency
	mailErr       error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*entity.Invoice),
		statuses: make(map[uuid.UUID]enum.InvoiceStatus),
	}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	if invoice.SerialNumber == 0 {
		highest := 0
		for _, inv := range r.invoices {
			if inv.Series == invoice.Series && inv.SerialNumber > highest {
				highest = inv.SerialNumber
			}
		}
		invoice.SerialNumber = highest + 1
		invoice.Serial = entity.FormatSerial(invoice.Series, invoice.SerialNumber)
	}
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, userID uuid.UUID, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if userID == uuid.Nil || inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	r.statuses[id] = status
	if inv, ok := r.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *fakeInvoiceRepo) MarkMailedAndNotify(ctx context.Context, id uuid.UUID, notifications []*entity.Notification) error {
	if r.mailErr != nil {
		// The real repository runs in a transaction, so a failure persists
		// neither the status change nor any notification
		return r.mailErr
	}
	r.statuses[id] = enum.InvoiceStatusMailed
	if inv, ok := r.invoices[id]; ok {
		inv.Status = enum.InvoiceStatusMailed
	}
	r.notifications = append(r.notifications, notifications...)
	return nil
}

func (r *fakeInvoiceRepo) UpdateConverted(ctx context.Context, id uuid.UUID, currencyID uuid.UUID, items entity.LineItems, subtotal, total decimal.Decimal) error {
	inv, ok := r.invoices[id]
	if !ok {
		return errors.New("invoice not found")
	}
	inv.CurrencyID = currencyID
	inv.Items = items
	inv.Subtotal = subtotal
	inv.Total = total
	for _, c := range r.currencies {
		if c.ID == currencyID {
			inv.Currency = *c
		}
	}
	return nil
}

type fakeCurrencyRepo struct {
	currencies []*entity.Currency
}

func (r *fakeCurrencyRepo) Create(ctx context.Context, currency *entity.Currency) error {
	r.currencies = append(r.currencies, currency)
	return nil
}

func (r *fakeCurrencyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	for _, c := range r.currencies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCurrencyRepo) GetByAbbr(ctx context.Context, abbr string) (*entity.Currency, error) {
	for _, c := range r.currencies {
		if c.Abbr == abbr {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCurrencyRepo) List(ctx context.Context) ([]entity.Currency, error) {
	var out []entity.Currency
	for _, c := range r.currencies {
		out = append(out, *c)
	}
	return out, nil
}

type fakeAccountRepo struct {
	accounts []*entity.Account
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	r.accounts = append(r.accounts, account)
	return nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FirstEnabled(ctx context.Context) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.Enabled {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) List(ctx context.Context) ([]entity.Account, error) {
	var out []entity.Account
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

type fakeUserRepo struct {
	admins []entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListByRole(ctx context.Context, roleName string) ([]entity.User, error) {
	if roleName == entity.RoleAdmin {
		return r.admins, nil
	}
	return nil, nil
}
func (r *fakeUserRepo) AssignRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	return nil
}

type fakeRenderer struct {
	lastDoc *pdf.Document
	err     error
}

func (r *fakeRenderer) Render(ctx context.Context, doc *pdf.Document) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.lastDoc = doc
	return "storage/invoices/" + doc.Serial + ".pdf", nil
}

type fakeRateSource struct {
	rates map[string]decimal.Decimal
	err   error
	calls int
}

func (r *fakeRateSource) LatestRates(ctx context.Context, apiKey, baseCode string) (map[string]decimal.Decimal, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.rates, nil
}

type invoiceFixture struct {
	service     *InvoiceService
	invoiceRepo *fakeInvoiceRepo
	renderer    *fakeRenderer
	rateSource  *fakeRateSource
	usd         *entity.Currency
	eur         *entity.Currency
}

func newInvoiceFixture(t *testing.T, profile *entity.Profile, admins []entity.User) *invoiceFixture {
	t.Helper()

	usd := &entity.Currency{
		ID: uuid.New(), Abbr: "USD", Name: "US Dollar", Symbol: "$",
		Precision: 2, DecimalMark: ".", ThousandsSeparator: ",", SymbolFirst: true,
	}
	eur := &entity.Currency{
		ID: uuid.New(), Abbr: "EUR", Name: "Euro", Symbol: "€",
		Precision: 2, DecimalMark: ",", ThousandsSeparator: ".", SymbolFirst: false,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &invoiceFixture{
		invoiceRepo: newFakeInvoiceRepo(),
		renderer:    &fakeRenderer{},
		rateSource:  &fakeRateSource{rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")}},
		usd:         usd,
		eur:         eur,
	}
	f.invoiceRepo.currencies = []*entity.Currency{usd, eur}

	f.service = NewInvoiceService(
		f.invoiceRepo,
		&fakeCurrencyRepo{currencies: []*entity.Currency{usd, eur}},
		&fakeAccountRepo{accounts: []*entity.Account{
			{ID: uuid.New(), BankName: "First Bank", BicSwiftCode: "FBKE1234", Number: "0011223344", Enabled: true},
		}},
		&fakeUserRepo{admins: admins},
		f.renderer,
		f.rateSource,
		nil,
		profile,
		logger,
	)
	return f
}

func (f *invoiceFixture) seedInvoice(taxRate decimal.Decimal) *entity.Invoice {
	invoice := &entity.Invoice{
		ID:           uuid.New(),
		Serial:       "IN-000001",
		SerialNumber: 1,
		Series:       enum.InvoiceSeriesIN,
		Status:       enum.InvoiceStatusDraft,
		Items: entity.LineItems{
			{Description: "Consulting", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
			{Description: "Support", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
		},
		TaxRate:    taxRate,
		CurrencyID: f.usd.ID,
		Currency:   *f.usd,
		UserID:     uuid.New(),
		User:       entity.User{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
	}
	invoice.ComputeTotals(2)
	f.invoiceRepo.invoices[invoice.ID] = invoice
	return invoice
}

func testProfile() *entity.Profile {
	return &entity.Profile{
		ID:                 uuid.New(),
		Name:               "Acme Ltd",
		Email:              "billing@acme.test",
		ExchangeRateAPIKey: "key-123",
	}
}

func TestConvertCurrency(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	invoice := f.seedInvoice(decimal.Zero)

	converted, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "EUR")
	require.NoError(t, err)

	assert.Equal(t, f.eur.ID, converted.CurrencyID)
	require.Len(t, converted.Items, 2)
	assert.Equal(t, "90", converted.Items[0].UnitPrice.String())
	assert.Equal(t, "45", converted.Items[1].UnitPrice.String())
	assert.Equal(t, "135", converted.Subtotal.String())
	assert.Equal(t, "135", converted.Total.String())
}

func TestConvertCurrency_TotalsIncludeTax(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	invoice := f.seedInvoice(decimal.NewFromInt(16))

	converted, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "EUR")
	require.NoError(t, err)

	// Subtotal 135, tax 21.6, total stays the sum of the two
	assert.Equal(t, "135", converted.Subtotal.String())
	assert.Equal(t, "156.6", converted.Total.String())
	assert.True(t, converted.Total.Equal(converted.Subtotal.Add(converted.TaxAmount(2))))
}

func TestConvertCurrency_RoundsUpFractionalAmounts(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	rate := decimal.RequireFromString("0.9137")
	f.rateSource.rates = map[string]decimal.Decimal{"EUR": rate}
	invoice := f.seedInvoice(decimal.Zero)

	converted, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "EUR")
	require.NoError(t, err)
	require.Len(t, converted.Items, 2)

	// 100 * 0.9137 = 91.37 exactly; 50 * 0.9137 = 45.685 rounds up to 45.69
	assert.Equal(t, "91.37", converted.Items[0].UnitPrice.String())
	assert.Equal(t, "45.69", converted.Items[1].UnitPrice.String())

	// A converted price is never below the exact product
	originals := []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(50)}
	for i, item := range converted.Items {
		assert.True(t, item.UnitPrice.GreaterThanOrEqual(originals[i].Mul(rate)))
	}
}

func TestConvertCurrency_RoundTripDrift(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	rate := decimal.RequireFromString("0.9137")
	f.rateSource.rates = map[string]decimal.Decimal{"EUR": rate}
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "EUR")
	require.NoError(t, err)

	f.rateSource.rates = map[string]decimal.Decimal{"USD": decimal.NewFromInt(1).Div(rate)}
	back, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "USD")
	require.NoError(t, err)
	require.Len(t, back.Items, 2)

	// Each leg rounds up, so a round trip only ever drifts upward, by at
	// most one minor unit per conversion
	originals := []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(50)}
	tolerance := decimal.RequireFromString("0.02")
	for i, item := range back.Items {
		assert.True(t, item.UnitPrice.GreaterThanOrEqual(originals[i]))
		assert.True(t, item.UnitPrice.Sub(originals[i]).LessThanOrEqual(tolerance))
	}
	assert.True(t, back.Total.Equal(back.Subtotal))
}

func TestConvertCurrency_SameCurrencyIsNoOp(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	invoice := f.seedInvoice(decimal.Zero)

	converted, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "USD")
	require.NoError(t, err)

	assert.Equal(t, 0, f.rateSource.calls)
	assert.Equal(t, f.usd.ID, converted.CurrencyID)
	assert.Equal(t, "150", converted.Subtotal.String())
}

func TestConvertCurrency_UnknownTargetCurrency(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "XXX")
	require.Error(t, err)
	assert.Equal(t, "Currency not found", err.Error())
}

func TestConvertCurrency_MissingRateForTarget(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	f.rateSource.rates = map[string]decimal.Decimal{"KES": decimal.NewFromInt(129)}
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "EUR")
	assert.ErrorIs(t, err, apperror.ErrRateDataMalformed)
}

func TestConvertCurrency_MissingProfile(t *testing.T) {
	f := newInvoiceFixture(t, nil, nil)
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "EUR")
	assert.ErrorIs(t, err, apperror.ErrConfigurationMissing)
}

func TestConvertCurrency_RateProviderError(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	f.rateSource.err = apperror.ErrRateProviderUnavailable
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.ConvertCurrency(context.Background(), invoice.ID, "EUR")
	assert.ErrorIs(t, err, apperror.ErrRateProviderUnavailable)
}

func TestGenerateDocument(t *testing.T) {
	admins := []entity.User{
		{ID: uuid.New(), FirstName: "A", Email: "a@acme.test"},
		{ID: uuid.New(), FirstName: "B", Email: "b@acme.test"},
		{ID: uuid.New(), FirstName: "C", Email: "c@acme.test"},
	}
	f := newInvoiceFixture(t, testProfile(), admins)
	invoice := f.seedInvoice(decimal.Zero)

	path, err := f.service.GenerateDocument(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "storage/invoices/IN-000001.pdf", path)

	// Every admin receives a notification pointing at the invoice
	require.Len(t, f.invoiceRepo.notifications, 3)
	for _, n := range f.invoiceRepo.notifications {
		assert.Equal(t, "Invoice mailed", n.Title)
		assert.Equal(t, entity.NotificationLevelWarning, n.Level)
		assert.Contains(t, n.ActionURL, invoice.ID.String())
	}

	assert.Equal(t, enum.InvoiceStatusMailed, f.invoiceRepo.statuses[invoice.ID])
}

func TestGenerateDocument_CurrencyFormatPassthrough(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.GenerateDocument(context.Background(), invoice.ID)
	require.NoError(t, err)

	doc := f.renderer.lastDoc
	require.NotNil(t, doc)
	assert.Equal(t, "$", doc.Format.Symbol)
	assert.Equal(t, 2, doc.Format.Precision)
	assert.Equal(t, ".", doc.Format.DecimalMark)
	assert.Equal(t, ",", doc.Format.ThousandsSeparator)
	assert.True(t, doc.Format.SymbolFirst)
	assert.Equal(t, "Acme Ltd", doc.Seller.Name)
	assert.Equal(t, "Jane Doe", doc.Buyer.Name)
}

func TestGenerateDocument_BankAccountFallback(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.GenerateDocument(context.Background(), invoice.ID)
	require.NoError(t, err)

	require.NotNil(t, f.renderer.lastDoc.Bank)
	assert.Equal(t, "First Bank", f.renderer.lastDoc.Bank.BankName)
}

func TestGenerateDocument_MissingProfile(t *testing.T) {
	f := newInvoiceFixture(t, nil, nil)
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.GenerateDocument(context.Background(), invoice.ID)
	assert.ErrorIs(t, err, apperror.ErrConfigurationMissing)
}

func TestGenerateDocument_RendererFailure(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)
	f.renderer.err = apperror.ErrRenderingFailed
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.GenerateDocument(context.Background(), invoice.ID)
	assert.ErrorIs(t, err, apperror.ErrRenderingFailed)
	assert.Empty(t, f.invoiceRepo.notifications)
}

func TestGenerateDocument_NotificationFailureLeavesNoPartialState(t *testing.T) {
	admins := []entity.User{
		{ID: uuid.New(), FirstName: "A", Email: "a@acme.test"},
		{ID: uuid.New(), FirstName: "B", Email: "b@acme.test"},
		{ID: uuid.New(), FirstName: "C", Email: "c@acme.test"},
	}
	f := newInvoiceFixture(t, testProfile(), admins)
	f.invoiceRepo.mailErr = errors.New("insert failed")
	invoice := f.seedInvoice(decimal.Zero)

	_, err := f.service.GenerateDocument(context.Background(), invoice.ID)
	require.Error(t, err)

	// The failed transaction persists neither the status change nor any
	// of the notifications
	assert.Equal(t, enum.InvoiceStatusDraft, invoice.Status)
	assert.Empty(t, f.invoiceRepo.statuses)
	assert.Empty(t, f.invoiceRepo.notifications)
}

func TestCreateInvoice(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)

	invoice, err := f.service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		UserID:     uuid.New(),
		Series:     enum.InvoiceSeriesIN,
		CurrencyID: f.usd.ID,
		TaxRate:    decimal.NewFromInt(10),
		Items: []InvoiceItemInput{
			{Description: "Consulting", UnitPrice: decimal.RequireFromString("99.99"), Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "IN-000001", invoice.Serial)
	assert.Equal(t, 1, invoice.SerialNumber)
	assert.Equal(t, "199.98", invoice.Subtotal.String())
	// 10% of 199.98 is 19.998, rounded up to 20
	assert.Equal(t, "219.98", invoice.Total.String())
}

func TestCreateInvoice_SerialFollowsHighestSequence(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)

	// A soft deleted invoice keeps its serial, so the sequence continues
	// from the highest allocated number rather than the row count
	existing := f.seedInvoice(decimal.Zero)
	existing.SerialNumber = 5
	existing.Serial = entity.FormatSerial(enum.InvoiceSeriesIN, 5)

	invoice, err := f.service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		UserID:     uuid.New(),
		Series:     enum.InvoiceSeriesIN,
		CurrencyID: f.usd.ID,
		Items: []InvoiceItemInput{
			{Description: "Consulting", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, invoice.SerialNumber)
	assert.Equal(t, "IN-000006", invoice.Serial)
}

func TestCreateInvoice_UnknownCurrency(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)

	_, err := f.service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		UserID:     uuid.New(),
		CurrencyID: uuid.New(),
		Items:      []InvoiceItemInput{{Description: "x", UnitPrice: decimal.NewFromInt(1), Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, "Currency not found", err.Error())
}

func TestCreateInvoice_NoItems(t *testing.T) {
	f := newInvoiceFixture(t, testProfile(), nil)

	_, err := f.service.CreateInvoice(context.Background(), &CreateInvoiceInput{
		UserID:     uuid.New(),
		CurrencyID: f.usd.ID,
	})
	require.Error(t, err)
}
