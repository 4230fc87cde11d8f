package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"gorm.io/gorm"
)

// CustomerService manages customers and their faenas (work sites).
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(name, taxID, contact string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	customer := &models.Customer{Name: name, TaxID: taxID, Contact: contact}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// GetCustomer returns a customer with its faenas
func (s *CustomerService) GetCustomer(id uint64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// ListCustomers retrieves customers with pagination
func (s *CustomerService) ListCustomers(page, limit int) ([]models.Customer, int64, error) {
	return s.customerRepo.List(page, limit)
}

// UpdateCustomer updates a customer's details
func (s *CustomerService) UpdateCustomer(id uint64, name, taxID, contact string) (*models.Customer, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	customer.Name = name
	customer.TaxID = taxID
	customer.Contact = contact
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(id uint64) error {
	if _, err := s.GetCustomer(id); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// CreateFaena creates a work site under a customer
func (s *CustomerService) CreateFaena(customerID uint64, name, location string) (*models.Faena, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	faena := &models.Faena{CustomerID: customerID, Name: name, Location: location}
	if err := s.customerRepo.CreateFaena(faena); err != nil {
		return nil, fmt.Errorf("failed to create faena: %w", err)
	}
	return faena, nil
}

// GetFaena returns a faena by ID
func (s *CustomerService) GetFaena(id uint64) (*models.Faena, error) {
	faena, err := s.customerRepo.FindFaenaByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFaenaNotFound
		}
		return nil, fmt.Errorf("failed to find faena: %w", err)
	}
	return faena, nil
}

// ListFaenas returns a customer's work sites
func (s *CustomerService) ListFaenas(customerID uint64) ([]models.Faena, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return s.customerRepo.ListFaenas(customerID)
}

// UpdateFaena updates a faena's name and location
func (s *CustomerService) UpdateFaena(id uint64, name, location string) (*models.Faena, error) {
	faena, err := s.GetFaena(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	faena.Name = name
	faena.Location = location
	if err := s.customerRepo.UpdateFaena(faena); err != nil {
		return nil, fmt.Errorf("failed to update faena: %w", err)
	}
	return faena, nil
}

// DeleteFaena soft-deletes a faena
func (s *CustomerService) DeleteFaena(id uint64) error {
	if _, err := s.GetFaena(id); err != nil {
		return err
	}
	if err := s.customerRepo.DeleteFaena(id); err != nil {
		return fmt.Errorf("failed to delete faena: %w", err)
	}
	return nil
}
