package services

import (
	"gorm.io/gorm"

	"github.com/kendall-kelly/field-service-api/models"
)

// CustomerService owns CRUD operations for customers, including the
// read-time aggregates (job count, paid revenue)
type CustomerService struct {
	db *gorm.DB
}

// NewCustomerService creates a customer service backed by the given database
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// CreateCustomerInput carries the fields for a new customer
type CreateCustomerInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

// UpdateCustomerInput carries the full replacement state for a customer
type UpdateCustomerInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	IsActive      bool
}

// ListCustomers returns all active customers with their aggregates.
// Soft-deleted customers are excluded.
func (s *CustomerService) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Where("is_active = ?", true).Find(&customers).Error; err != nil {
		return nil, err
	}

	for i := range customers {
		if err := s.loadAggregates(&customers[i]); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

// GetCustomer returns one customer with aggregates, including inactive ones
// so historical records stay reachable by ID
func (s *CustomerService) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, err
	}

	if err := s.loadAggregates(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer persists a new active customer
func (s *CustomerService) CreateCustomer(input CreateCustomerInput) (*models.Customer, error) {
	customer := models.Customer{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		IsActive:      true,
	}

	if err := s.db.Create(&customer).Error; err != nil {
		return nil, err
	}
	return s.GetCustomer(customer.ID)
}

// UpdateCustomer replaces the mutable fields of a customer
func (s *CustomerService) UpdateCustomer(id uint, input UpdateCustomerInput) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":           input.Name,
		"contact_person": input.ContactPerson,
		"email":          input.Email,
		"phone":          input.Phone,
		"address":        input.Address,
		"is_active":      input.IsActive,
	}
	if err := s.db.Model(&customer).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetCustomer(id)
}

// DeleteCustomer soft-deletes a customer by clearing its active flag.
// Jobs and invoices that reference it remain queryable.
func (s *CustomerService) DeleteCustomer(id uint) error {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return err
	}

	return s.db.Model(&customer).Update("is_active", false).Error
}

// loadAggregates recomputes the derived fields on every read; nothing is
// cached or stored
func (s *CustomerService) loadAggregates(customer *models.Customer) error {
	var jobCount int64
	err := s.db.Model(&models.Job{}).
		Where("customer_id = ?", customer.ID).
		Count(&jobCount).Error
	if err != nil {
		return err
	}
	customer.JobCount = int(jobCount)

	var revenue float64
	err = s.db.Model(&models.Invoice{}).
		Where("customer_id = ? AND status = ?", customer.ID, "paid").
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		return err
	}
	customer.TotalRevenue = revenue

	return nil
}
