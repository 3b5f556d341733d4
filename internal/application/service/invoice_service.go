package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/jumapesa/billing-api/internal/domain/enum"
	"github.com/jumapesa/billing-api/internal/domain/repository"
	"github.com/jumapesa/billing-api/internal/exchange"
	"github.com/jumapesa/billing-api/internal/pdf"
	"github.com/jumapesa/billing-api/pkg/apperror"
	"github.com/jumapesa/billing-api/pkg/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// InvoiceService handles invoice lifecycle operations: creation, document
// generation and currency conversion.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	currencyRepo repository.CurrencyRepository
	accountRepo  repository.AccountRepository
	userRepo     repository.UserRepository
	renderer     pdf.InvoiceRenderer
	rateSource   exchange.RateSource
	emailService *email.EmailService
	profile      *entity.Profile
	logger       *logrus.Logger
}

// NewInvoiceService creates a new invoice service. The profile is resolved
// once at startup; a nil profile makes document generation and currency
// conversion fail with a configuration error instead of a lookup per call.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	currencyRepo repository.CurrencyRepository,
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	renderer pdf.InvoiceRenderer,
	rateSource exchange.RateSource,
	emailService *email.EmailService,
	profile *entity.Profile,
	logger *logrus.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		currencyRepo: currencyRepo,
		accountRepo:  accountRepo,
		userRepo:     userRepo,
		renderer:     renderer,
		rateSource:   rateSource,
		emailService: emailService,
		profile:      profile,
		logger:       logger,
	}
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	UserID     uuid.UUID
	Series     enum.InvoiceSeries
	Status     enum.InvoiceStatus
	CurrencyID uuid.UUID
	AccountID  *uuid.UUID
	TaxRate    decimal.Decimal
	Notes      string
	Items      []InvoiceItemInput
}

// InvoiceItemInput represents a line item input
type InvoiceItemInput struct {
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// CreateInvoice creates a new invoice with a generated serial and totals
// derived from its items
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	currency, err := s.currencyRepo.GetByID(ctx, input.CurrencyID)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Invoice must have at least one item")
	}

	items := make(entity.LineItems, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, entity.LineItem{
			Description: item.Description,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	// The serial is allocated by the repository inside the create transaction
	invoice := &entity.Invoice{
		Series:     input.Series,
		Status:     input.Status,
		Items:      items,
		TaxRate:    input.TaxRate,
		Notes:      input.Notes,
		CurrencyID: input.CurrencyID,
		AccountID:  input.AccountID,
		UserID:     input.UserID,
	}
	invoice.ComputeTotals(int32(currency.Precision))

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithRelations(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices retrieves invoices with filtering and pagination. A nil
// userID lists invoices across all users.
func (s *InvoiceService) ListInvoices(ctx context.Context, userID uuid.UUID, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, userID, params)
}

// DeleteInvoice soft deletes an invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// UpdateInvoiceStatus transitions an invoice to a new status
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid invoice status")
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithRelations(ctx, id)
}

// GenerateDocument renders the invoice PDF, marks the invoice as mailed and
// notifies every administrator. The buyer email is best effort and never
// fails the operation.
func (s *InvoiceService) GenerateDocument(ctx context.Context, id uuid.UUID) (string, error) {
	if s.profile == nil {
		return "", apperror.ErrConfigurationMissing
	}

	invoice, err := s.invoiceRepo.GetWithRelations(ctx, id)
	if err != nil {
		return "", err
	}
	if invoice == nil {
		return "", apperror.NewNotFoundError("Invoice")
	}

	// Fall back to the first enabled bank account when the invoice does not
	// reference one
	account := invoice.Account
	if account == nil {
		account, err = s.accountRepo.FirstEnabled(ctx)
		if err != nil {
			return "", err
		}
	}

	doc := s.buildDocument(invoice, account)

	path, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return "", err
	}

	admins, err := s.userRepo.ListByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return "", err
	}

	// The status change and the admin notifications commit together; a
	// failure mid fan-out must not leave a mailed invoice without its inbox
	// entries or vice versa
	if err := s.invoiceRepo.MarkMailedAndNotify(ctx, invoice.ID, adminNotifications(admins, invoice)); err != nil {
		return "", err
	}

	if s.emailService != nil && invoice.User.Email != "" {
		if err := s.emailService.SendInvoiceReadyEmail(invoice.User.Email, invoice.User.FullName(), invoice.Serial); err != nil {
			s.logger.WithError(err).WithField("serial", invoice.Serial).
				Warn("failed to send invoice email to buyer")
		}
	}

	return path, nil
}

func (s *InvoiceService) buildDocument(invoice *entity.Invoice, account *entity.Account) *pdf.Document {
	doc := &pdf.Document{
		Serial:     invoice.Serial,
		Status:     invoice.Status.String(),
		IssuedDate: invoice.CreatedAt.Format("2006-01-02"),
		Seller: pdf.Party{
			Name:  s.profile.Name,
			Phone: s.profile.Phone,
			Email: s.profile.Email,
		},
		Buyer: pdf.Party{
			Name:  invoice.User.FullName(),
			Phone: invoice.User.Phone,
			Email: invoice.User.Email,
		},
		Subtotal:  invoice.Subtotal,
		TaxRate:   invoice.TaxRate,
		TaxAmount: invoice.TaxAmount(int32(invoice.Currency.Precision)),
		Total:     invoice.Total,
		Format: pdf.Format{
			Symbol:             invoice.Currency.Symbol,
			Precision:          invoice.Currency.Precision,
			DecimalMark:        invoice.Currency.DecimalMark,
			ThousandsSeparator: invoice.Currency.ThousandsSeparator,
			SymbolFirst:        invoice.Currency.SymbolFirst,
		},
		Notes:    invoice.Notes,
		LogoPath: s.profile.LogoPath,
	}

	for _, item := range invoice.Items {
		doc.Lines = append(doc.Lines, pdf.Line{
			Description: item.Description,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Total:       item.LineTotal(),
		})
	}

	if account != nil {
		doc.Bank = &pdf.BankDetails{
			BankName:     account.BankName,
			BicSwiftCode: account.BicSwiftCode,
			Number:       account.Number,
		}
	}

	return doc
}

func adminNotifications(admins []entity.User, invoice *entity.Invoice) []*entity.Notification {
	notifications := make([]*entity.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, &entity.Notification{
			UserID:      admin.ID,
			Title:       "Invoice mailed",
			Body:        fmt.Sprintf("Invoice %s has been generated and mailed.", invoice.Serial),
			Icon:        "bolt",
			Level:       entity.NotificationLevelWarning,
			ActionLabel: "View invoice",
			ActionURL:   fmt.Sprintf("/invoices/%s", invoice.ID),
		})
	}
	return notifications
}

// ConvertCurrency converts an invoice to the target currency identified by
// its abbreviation. Item unit prices are multiplied by the latest exchange
// rate and rounded up to the target currency's precision, then subtotal and
// total are recomputed from the converted items. Converting to the invoice's
// current currency is a no-op.
func (s *InvoiceService) ConvertCurrency(ctx context.Context, id uuid.UUID, targetAbbr string) (*entity.Invoice, error) {
	if s.profile == nil || s.profile.ExchangeRateAPIKey == "" {
		return nil, apperror.ErrConfigurationMissing
	}

	invoice, err := s.invoiceRepo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Currency.Abbr == targetAbbr {
		return invoice, nil
	}

	target, err := s.currencyRepo.GetByAbbr(ctx, targetAbbr)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NewNotFoundError("Currency")
	}

	rates, err := s.rateSource.LatestRates(ctx, s.profile.ExchangeRateAPIKey, invoice.Currency.Abbr)
	if err != nil {
		return nil, err
	}

	rate, ok := rates[target.Abbr]
	if !ok {
		return nil, apperror.ErrRateDataMalformed
	}

	precision := int32(target.Precision)
	converted := make(entity.LineItems, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		converted = append(converted, entity.LineItem{
			Description: item.Description,
			UnitPrice:   item.UnitPrice.Mul(rate).RoundUp(precision),
			Quantity:    item.Quantity,
		})
	}

	invoice.Items = converted
	invoice.CurrencyID = target.ID
	invoice.ComputeTotals(precision)

	if err := s.invoiceRepo.UpdateConverted(ctx, invoice.ID, target.ID, converted, invoice.Subtotal, invoice.Total); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"serial": invoice.Serial,
		"from":   invoice.Currency.Abbr,
		"to":     target.Abbr,
		"rate":   rate.String(),
	}).Info("invoice currency converted")

	return s.invoiceRepo.GetWithRelations(ctx, invoice.ID)
}
