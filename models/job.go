package models

import (
	"time"
)

// Job represents a unit of field work performed for a customer
type Job struct {
	ID                     uint        `gorm:"primaryKey" json:"id"`
	CustomerID             uint        `gorm:"not null;index" json:"customer_id"`
	Customer               Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	CustomerName           string      `gorm:"-" json:"customer_name"` // computed field, flattened from Customer
	Title                  string      `gorm:"not null;size:200" json:"title"`
	Description            string      `gorm:"size:2000" json:"description"`
	Status                 string      `gorm:"not null;default:'pending';index" json:"status"` // pending, scheduled, in-progress, completed, cancelled
	Priority               string      `gorm:"not null;default:'medium'" json:"priority"`      // low, medium, high, urgent
	ScheduledDate          *time.Time  `gorm:"index" json:"scheduled_date"`
	CompletedDate          *time.Time  `json:"completed_date"`
	AssignedTechnicianID   *uint       `gorm:"index" json:"assigned_technician_id"` // nullable, a job may be unassigned
	AssignedTechnician     *Technician `gorm:"foreignKey:AssignedTechnicianID" json:"-"`
	AssignedTechnicianName *string     `gorm:"-" json:"assigned_technician_name"` // computed field
	EstimatedHours         float64     `json:"estimated_hours"`
	ActualHours            float64     `json:"actual_hours"`
	InvoiceID              *uint       `gorm:"index" json:"invoice_id"` // nullable, set when the job is billed on an invoice
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}
