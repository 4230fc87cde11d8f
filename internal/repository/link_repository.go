package repository

import (
	"github.com/andestrack/field-service-api/internal/models"
	"gorm.io/gorm"
)

// GormLinkRepository is a GORM implementation of LinkRepository
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new LinkRepository
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &GormLinkRepository{db: db}
}

func (r *GormLinkRepository) CreateDayService(link *models.WorkOrderDayService) error {
	return r.db.Create(link).Error
}

func (r *GormLinkRepository) FindDayServiceByID(id uint64) (*models.WorkOrderDayService, error) {
	var link models.WorkOrderDayService
	if err := r.db.First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindDayService finds the link for (day, service) regardless of its active
// flag.
func (r *GormLinkRepository) FindDayService(dayID, serviceID uint64) (*models.WorkOrderDayService, error) {
	var link models.WorkOrderDayService
	if err := r.db.Where("work_order_day_id = ? AND service_id = ?", dayID, serviceID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *GormLinkRepository) ListDayServices(dayID uint64, activeOnly bool) ([]models.WorkOrderDayService, error) {
	var links []models.WorkOrderDayService
	query := r.db.Where("work_order_day_id = ?", dayID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Preload("Service").
		Order("work_order_day_services.sort_order ASC").Find(&links).Error
	return links, err
}

// ListDayServicesByService lists the day-service links referencing a service
// across all work orders, with days preloaded.
func (r *GormLinkRepository) ListDayServicesByService(serviceID uint64, activeOnly bool) ([]models.WorkOrderDayService, error) {
	var links []models.WorkOrderDayService
	query := r.db.Where("service_id = ?", serviceID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Preload("WorkOrderDay").Find(&links).Error
	return links, err
}

func (r *GormLinkRepository) UpdateDayService(link *models.WorkOrderDayService) error {
	return r.db.Save(link).Error
}

func (r *GormLinkRepository) CountActiveDayServices(dayID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.WorkOrderDayService{}).
		Where("work_order_day_id = ? AND is_active = ?", dayID, true).
		Count(&count).Error
	return count, err
}

func (r *GormLinkRepository) CreateDayTaskTemplate(link *models.WorkOrderDayTaskTemplate) error {
	return r.db.Create(link).Error
}

func (r *GormLinkRepository) FindDayTaskTemplateByID(id uint64) (*models.WorkOrderDayTaskTemplate, error) {
	var link models.WorkOrderDayTaskTemplate
	if err := r.db.First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindDayTaskTemplate finds the link for (day, taskTemplate) regardless of its
// active flag.
func (r *GormLinkRepository) FindDayTaskTemplate(dayID, taskTemplateID uint64) (*models.WorkOrderDayTaskTemplate, error) {
	var link models.WorkOrderDayTaskTemplate
	if err := r.db.Where("work_order_day_id = ? AND task_template_id = ?", dayID, taskTemplateID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *GormLinkRepository) ListDayTaskTemplates(dayID uint64, activeOnly bool) ([]models.WorkOrderDayTaskTemplate, error) {
	var links []models.WorkOrderDayTaskTemplate
	query := r.db.Where("work_order_day_id = ?", dayID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Preload("TaskTemplate").
		Order("work_order_day_task_templates.sort_order ASC").Find(&links).Error
	return links, err
}

func (r *GormLinkRepository) UpdateDayTaskTemplate(link *models.WorkOrderDayTaskTemplate) error {
	return r.db.Save(link).Error
}

func (r *GormLinkRepository) CountActiveDayTaskTemplates(dayID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.WorkOrderDayTaskTemplate{}).
		Where("work_order_day_id = ? AND is_active = ?", dayID, true).
		Count(&count).Error
	return count, err
}

func (r *GormLinkRepository) ListDayDependencies(dayID uint64) ([]models.WorkOrderDayTaskDependency, error) {
	var deps []models.WorkOrderDayTaskDependency
	err := r.db.Where("work_order_day_id = ?", dayID).Find(&deps).Error
	return deps, err
}
