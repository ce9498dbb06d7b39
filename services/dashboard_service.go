package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/models"
)

// DashboardService computes the summary figures shown on the dashboard.
// Everything is a read-time aggregation; nothing is cached.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a dashboard service backed by the given database
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardStats is the summary projection for the dashboard view
type DashboardStats struct {
	TotalCustomers  int64            `json:"total_customers"`
	ActiveJobs      int64            `json:"active_jobs"`
	PendingInvoices int64            `json:"pending_invoices"`
	MonthlyRevenue  float64          `json:"monthly_revenue"`
	UpcomingJobs    []models.Job     `json:"upcoming_jobs"`
	RecentInvoices  []models.Invoice `json:"recent_invoices"`
}

// GetStats aggregates counts and sums across customers, jobs and invoices:
// active customers, jobs currently scheduled or in progress, invoices not yet
// paid or cancelled, revenue paid within the current UTC month, the next five
// scheduled jobs and the five most recently created invoices.
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.db.Model(&models.Customer{}).
		Where("is_active = ?", true).
		Count(&stats.TotalCustomers).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Job{}).
		Where("status IN ?", []string{"scheduled", "in-progress"}).
		Count(&stats.ActiveJobs).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Invoice{}).
		Where("status IN ?", []string{"draft", "sent", "overdue"}).
		Count(&stats.PendingInvoices).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	err = s.db.Model(&models.Invoice{}).
		Where("status = ? AND paid_date >= ?", "paid", monthStart).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.MonthlyRevenue).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("Customer").Preload("AssignedTechnician").
		Where("status = ? AND scheduled_date >= ?", "scheduled", now).
		Order("scheduled_date ASC").
		Limit(5).
		Find(&stats.UpcomingJobs).Error
	if err != nil {
		return nil, err
	}
	for i := range stats.UpcomingJobs {
		populateJobNames(&stats.UpcomingJobs[i])
	}

	err = s.db.Preload("Customer").Preload("Items").Preload("Jobs").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentInvoices).Error
	if err != nil {
		return nil, err
	}
	for i := range stats.RecentInvoices {
		populateInvoiceProjection(&stats.RecentInvoices[i])
	}

	return stats, nil
}
