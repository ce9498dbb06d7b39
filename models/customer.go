package models

import (
	"time"
)

// Customer represents a client company the service business works for
type Customer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:200" json:"name"`
	ContactPerson string    `gorm:"size:200" json:"contact_person"`
	Email         string    `gorm:"size:200;index" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Address       string    `gorm:"size:500" json:"address"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"` // soft delete flag, never a hard delete
	JobCount      int       `gorm:"-" json:"job_count"`                     // computed field, recalculated on every read
	TotalRevenue  float64   `gorm:"-" json:"total_revenue"`                 // computed field, sum of paid invoice totals
	Jobs          []Job     `gorm:"foreignKey:CustomerID" json:"-"`
	Invoices      []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
