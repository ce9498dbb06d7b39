package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/models"
)

// InvoiceService owns creation, mutation, job linkage and deletion of
// invoice aggregates, plus the joined reads that present an invoice together
// with its customer name, line items and linked job IDs.
type InvoiceService struct {
	db *gorm.DB
}

// NewInvoiceService creates an invoice service backed by the given database
func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// CreateInvoiceItemInput describes one line item on a new invoice
type CreateInvoiceItemInput struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// CreateInvoiceInput carries everything needed to create an invoice
type CreateInvoiceInput struct {
	CustomerID uint
	DueDate    *time.Time
	TaxRate    float64
	Notes      string
	Items      []CreateInvoiceItemInput
	JobIDs     []uint
}

// UpdateInvoiceInput carries the only four fields an update may change.
// Customer, number, items and monetary totals are immutable after creation.
type UpdateInvoiceInput struct {
	DueDate  *time.Time
	Status   string
	PaidDate *time.Time
	Notes    string
}

// ListInvoices returns all invoices, optionally filtered by customer, each
// joined with its customer name, line items and linked job IDs
func (s *InvoiceService) ListInvoices(customerID *uint) ([]models.Invoice, error) {
	query := s.db.Preload("Customer").Preload("Items").Preload("Jobs")
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}

	for i := range invoices {
		populateInvoiceProjection(&invoices[i])
	}
	return invoices, nil
}

// GetInvoice returns one invoice with its joined projection, or
// gorm.ErrRecordNotFound if no invoice with that ID exists
func (s *InvoiceService) GetInvoice(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Preload("Customer").Preload("Items").Preload("Jobs").
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}

	populateInvoiceProjection(&invoice)
	return &invoice, nil
}

// CreateInvoice generates the invoice number, computes the stored totals from
// the supplied items, persists the invoice with its items and links the
// requested jobs, all inside one transaction. Job IDs that do not match an
// existing job are silently skipped.
func (s *InvoiceService) CreateInvoice(input CreateInvoiceInput) (*models.Invoice, error) {
	now := time.Now().UTC()

	var invoiceID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := nextInvoiceNumber(tx, now)
		if err != nil {
			return err
		}

		subtotal := 0.0
		items := make([]models.InvoiceItem, 0, len(input.Items))
		for _, item := range input.Items {
			amount := item.Quantity * item.UnitPrice
			subtotal += amount
			items = append(items, models.InvoiceItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Amount:      amount,
			})
		}
		taxAmount := subtotal * input.TaxRate

		dueDate := input.DueDate
		if dueDate == nil {
			d := now.Add(30 * 24 * time.Hour)
			dueDate = &d
		}

		invoice := models.Invoice{
			CustomerID:    input.CustomerID,
			InvoiceNumber: number,
			InvoiceDate:   now,
			DueDate:       dueDate,
			Subtotal:      subtotal,
			TaxAmount:     taxAmount,
			Total:         subtotal + taxAmount,
			Status:        "draft",
			Notes:         input.Notes,
			Items:         items,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		if len(input.JobIDs) > 0 {
			err := tx.Model(&models.Job{}).
				Where("id IN ?", input.JobIDs).
				Update("invoice_id", invoice.ID).Error
			if err != nil {
				return err
			}
		}

		invoiceID = invoice.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetInvoice(invoiceID)
}

// UpdateInvoice replaces exactly DueDate, Status, PaidDate and Notes; all
// other fields are untouched. Returns gorm.ErrRecordNotFound if the invoice
// does not exist.
func (s *InvoiceService) UpdateInvoice(id uint, input UpdateInvoiceInput) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"due_date":  input.DueDate,
		"status":    input.Status,
		"paid_date": input.PaidDate,
		"notes":     input.Notes,
	}
	if err := s.db.Model(&invoice).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetInvoice(id)
}

// DeleteInvoice clears the invoice reference on every linked job, then
// removes the invoice and its line items, inside one transaction. Unlinking
// is an explicit application-level step rather than a database cascade so the
// behavior holds on any storage engine.
func (s *InvoiceService) DeleteInvoice(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, id).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Job{}).
			Where("invoice_id = ?", invoice.ID).
			Update("invoice_id", nil).Error
		if err != nil {
			return err
		}

		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&invoice).Error
	})
}

// nextInvoiceNumber generates the number for an invoice created at the given
// instant: INV-{yyyyMM}-{sequence:04d}, where the sequence is the highest
// existing invoice ID plus one. The sequence is a global running counter, not
// a per-month one, and gaps left by deleted invoices propagate into the
// numbers. Preserved as observed; isolated here so the scheme can be swapped
// without touching callers.
func nextInvoiceNumber(tx *gorm.DB, now time.Time) (string, error) {
	var last models.Invoice
	err := tx.Select("id").Order("id DESC").First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return fmt.Sprintf("INV-%s-%04d", now.Format("200601"), last.ID+1), nil
}

// populateInvoiceProjection fills the computed fields of an invoice from its
// preloaded associations
func populateInvoiceProjection(invoice *models.Invoice) {
	invoice.CustomerName = invoice.Customer.Name
	invoice.JobIDs = make([]uint, 0, len(invoice.Jobs))
	for _, job := range invoice.Jobs {
		invoice.JobIDs = append(invoice.JobIDs, job.ID)
	}
	if invoice.Items == nil {
		invoice.Items = []models.InvoiceItem{}
	}
}
