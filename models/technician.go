package models

import (
	"time"
)

// Technician represents a field technician who can be assigned to jobs
type Technician struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null;size:200" json:"name"`
	Email          string    `gorm:"size:200" json:"email"`
	Phone          string    `gorm:"size:20" json:"phone"`
	Specialization string    `gorm:"size:100" json:"specialization"`
	HourlyRate     float64   `json:"hourly_rate"`
	HireDate       time.Time `json:"hire_date"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"` // soft delete flag
	ActiveJobCount int       `gorm:"-" json:"active_job_count"`              // computed field, jobs with status scheduled or in-progress
	AssignedJobs   []Job     `gorm:"foreignKey:AssignedTechnicianID" json:"-"`
}

// TableName specifies the table name for the Technician model
func (Technician) TableName() string {
	return "technicians"
}
