package repository

import (
	"github.com/andestrack/field-service-api/internal/models"
	"gorm.io/gorm"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *GormCustomerRepository) FindByID(id uint64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("Faenas").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormCustomerRepository) List(page, limit int) ([]models.Customer, int64, error) {
	var customers []models.Customer

	var total int64
	if err := r.db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("customers.name ASC")
	if page > 0 && limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	if err := query.Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete soft deletes a customer and its faenas
func (r *GormCustomerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.Faena{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
}

func (r *GormCustomerRepository) CreateFaena(faena *models.Faena) error {
	return r.db.Create(faena).Error
}

func (r *GormCustomerRepository) FindFaenaByID(id uint64) (*models.Faena, error) {
	var faena models.Faena
	if err := r.db.First(&faena, id).Error; err != nil {
		return nil, err
	}
	return &faena, nil
}

func (r *GormCustomerRepository) ListFaenas(customerID uint64) ([]models.Faena, error) {
	var faenas []models.Faena
	err := r.db.Where("customer_id = ?", customerID).Order("faenas.name ASC").Find(&faenas).Error
	return faenas, err
}

func (r *GormCustomerRepository) UpdateFaena(faena *models.Faena) error {
	return r.db.Save(faena).Error
}

func (r *GormCustomerRepository) DeleteFaena(id uint64) error {
	return r.db.Delete(&models.Faena{}, id).Error
}
