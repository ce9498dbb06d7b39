package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/models"
)

// JobService owns CRUD and filtered listing for jobs
type JobService struct {
	db *gorm.DB
}

// NewJobService creates a job service backed by the given database
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// JobFilter selects a subset of jobs. Filters are mutually exclusive with
// precedence CustomerID, then TechnicianID, then the date range (inclusive
// both ends); a zero filter lists everything.
type JobFilter struct {
	CustomerID   *uint
	TechnicianID *uint
	StartDate    *time.Time
	EndDate      *time.Time
}

// CreateJobInput carries the fields for a new job. Status is always set to
// pending by the server.
type CreateJobInput struct {
	CustomerID           uint
	Title                string
	Description          string
	Priority             string
	ScheduledDate        *time.Time
	AssignedTechnicianID *uint
	EstimatedHours       float64
}

// UpdateJobInput carries the full replacement state for a job's mutable
// fields. The customer reference and invoice link are not touched by updates.
type UpdateJobInput struct {
	Title                string
	Description          string
	Status               string
	Priority             string
	ScheduledDate        *time.Time
	CompletedDate        *time.Time
	AssignedTechnicianID *uint
	EstimatedHours       float64
	ActualHours          float64
}

// ListJobs returns jobs matching the filter, each joined with its customer
// and technician display names
func (s *JobService) ListJobs(filter JobFilter) ([]models.Job, error) {
	query := s.db.Preload("Customer").Preload("AssignedTechnician")

	switch {
	case filter.CustomerID != nil:
		query = query.Where("customer_id = ?", *filter.CustomerID)
	case filter.TechnicianID != nil:
		query = query.Where("assigned_technician_id = ?", *filter.TechnicianID)
	case filter.StartDate != nil && filter.EndDate != nil:
		query = query.Where("scheduled_date >= ? AND scheduled_date <= ?", *filter.StartDate, *filter.EndDate)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}

	for i := range jobs {
		populateJobNames(&jobs[i])
	}
	return jobs, nil
}

// GetJob returns one job, or gorm.ErrRecordNotFound if it does not exist
func (s *JobService) GetJob(id uint) (*models.Job, error) {
	var job models.Job
	err := s.db.Preload("Customer").Preload("AssignedTechnician").
		First(&job, id).Error
	if err != nil {
		return nil, err
	}

	populateJobNames(&job)
	return &job, nil
}

// CreateJob persists a new job with status pending and zero actual hours
func (s *JobService) CreateJob(input CreateJobInput) (*models.Job, error) {
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	job := models.Job{
		CustomerID:           input.CustomerID,
		Title:                input.Title,
		Description:          input.Description,
		Status:               "pending",
		Priority:             priority,
		ScheduledDate:        input.ScheduledDate,
		AssignedTechnicianID: input.AssignedTechnicianID,
		EstimatedHours:       input.EstimatedHours,
		ActualHours:          0,
	}

	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}
	return s.GetJob(job.ID)
}

// UpdateJob replaces the job's mutable fields. The map form is used so nil
// technician and date values really clear their columns; UpdatedAt refreshes
// on every call.
func (s *JobService) UpdateJob(id uint, input UpdateJobInput) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":                  input.Title,
		"description":            input.Description,
		"status":                 input.Status,
		"priority":               input.Priority,
		"scheduled_date":         input.ScheduledDate,
		"completed_date":         input.CompletedDate,
		"assigned_technician_id": input.AssignedTechnicianID,
		"estimated_hours":        input.EstimatedHours,
		"actual_hours":           input.ActualHours,
	}
	if err := s.db.Model(&job).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetJob(id)
}

// DeleteJob hard-deletes a job. Any invoice that listed the job simply loses
// that membership; nothing cascades.
func (s *JobService) DeleteJob(id uint) error {
	var job models.Job
	if err := s.db.First(&job, id).Error; err != nil {
		return err
	}

	return s.db.Delete(&job).Error
}

// populateJobNames fills the flattened display names from the preloaded
// associations
func populateJobNames(job *models.Job) {
	job.CustomerName = job.Customer.Name
	if job.AssignedTechnician != nil {
		name := job.AssignedTechnician.Name
		job.AssignedTechnicianName = &name
	}
}
