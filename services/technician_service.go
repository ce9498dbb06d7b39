package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/models"
)

// TechnicianService owns CRUD operations for technicians, including the
// read-time active-job count
type TechnicianService struct {
	db *gorm.DB
}

// NewTechnicianService creates a technician service backed by the given database
func NewTechnicianService(db *gorm.DB) *TechnicianService {
	return &TechnicianService{db: db}
}

// CreateTechnicianInput carries the fields for a new technician
type CreateTechnicianInput struct {
	Name           string
	Email          string
	Phone          string
	Specialization string
	HourlyRate     float64
	HireDate       time.Time
}

// UpdateTechnicianInput carries the full replacement state for a technician.
// HireDate is immutable after creation.
type UpdateTechnicianInput struct {
	Name           string
	Email          string
	Phone          string
	Specialization string
	HourlyRate     float64
	IsActive       bool
}

// ListTechnicians returns all active technicians with their active-job counts
func (s *TechnicianService) ListTechnicians() ([]models.Technician, error) {
	var technicians []models.Technician
	if err := s.db.Where("is_active = ?", true).Find(&technicians).Error; err != nil {
		return nil, err
	}

	for i := range technicians {
		if err := s.loadActiveJobCount(&technicians[i]); err != nil {
			return nil, err
		}
	}
	return technicians, nil
}

// GetTechnician returns one technician, including inactive ones
func (s *TechnicianService) GetTechnician(id uint) (*models.Technician, error) {
	var technician models.Technician
	if err := s.db.First(&technician, id).Error; err != nil {
		return nil, err
	}

	if err := s.loadActiveJobCount(&technician); err != nil {
		return nil, err
	}
	return &technician, nil
}

// CreateTechnician persists a new active technician
func (s *TechnicianService) CreateTechnician(input CreateTechnicianInput) (*models.Technician, error) {
	technician := models.Technician{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Specialization: input.Specialization,
		HourlyRate:     input.HourlyRate,
		HireDate:       input.HireDate,
		IsActive:       true,
	}

	if err := s.db.Create(&technician).Error; err != nil {
		return nil, err
	}
	return s.GetTechnician(technician.ID)
}

// UpdateTechnician replaces the mutable fields of a technician
func (s *TechnicianService) UpdateTechnician(id uint, input UpdateTechnicianInput) (*models.Technician, error) {
	var technician models.Technician
	if err := s.db.First(&technician, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":           input.Name,
		"email":          input.Email,
		"phone":          input.Phone,
		"specialization": input.Specialization,
		"hourly_rate":    input.HourlyRate,
		"is_active":      input.IsActive,
	}
	if err := s.db.Model(&technician).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetTechnician(id)
}

// DeleteTechnician soft-deletes a technician by clearing its active flag
func (s *TechnicianService) DeleteTechnician(id uint) error {
	var technician models.Technician
	if err := s.db.First(&technician, id).Error; err != nil {
		return err
	}

	return s.db.Model(&technician).Update("is_active", false).Error
}

// loadActiveJobCount counts the technician's jobs with status scheduled or
// in-progress, recomputed on every read
func (s *TechnicianService) loadActiveJobCount(technician *models.Technician) error {
	var count int64
	err := s.db.Model(&models.Job{}).
		Where("assigned_technician_id = ? AND status IN ?", technician.ID, []string{"scheduled", "in-progress"}).
		Count(&count).Error
	if err != nil {
		return err
	}

	technician.ActiveJobCount = int(count)
	return nil
}
