package models

import (
	"time"
)

// Invoice represents a bill issued to a customer. Subtotal, TaxAmount and
// Total are computed once at creation from the line items and stored; they
// are never recomputed afterwards.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerID    uint          `gorm:"not null;index" json:"customer_id"`
	Customer      Customer      `gorm:"foreignKey:CustomerID" json:"-"`
	CustomerName  string        `gorm:"-" json:"customer_name"` // computed field, flattened from Customer
	InvoiceNumber string        `gorm:"uniqueIndex;not null;size:50" json:"invoice_number"`
	InvoiceDate   time.Time     `json:"invoice_date"`
	DueDate       *time.Time    `json:"due_date"`
	Subtotal      float64       `json:"subtotal"`
	TaxAmount     float64       `json:"tax_amount"`
	Total         float64       `json:"total"`
	Status        string        `gorm:"not null;default:'draft';index" json:"status"` // draft, sent, paid, overdue, cancelled
	PaidDate      *time.Time    `json:"paid_date"`
	Notes         string        `gorm:"size:1000" json:"notes"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Jobs          []Job         `gorm:"foreignKey:InvoiceID" json:"-"`
	JobIDs        []uint        `gorm:"-" json:"job_ids"` // computed field, IDs of jobs currently linked to this invoice
	CreatedAt     time.Time     `json:"created_at"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents one line on an invoice
type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InvoiceID   uint    `gorm:"not null;index" json:"invoice_id"`
	Description string  `gorm:"not null;size:200" json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"` // stored as Quantity * UnitPrice at creation
}

// TableName specifies the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
