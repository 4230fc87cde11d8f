package repository

import (
	"github.com/andestrack/field-service-api/internal/models"
	"gorm.io/gorm"
)

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) CreateService(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *GormCatalogRepository) FindServiceByID(id uint64) (*models.Service, error) {
	var service models.Service
	if err := r.db.Preload("TaskTemplates", "is_active = ?", true).
		Preload("TaskTemplates.TaskTemplate").
		First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *GormCatalogRepository) ListServices() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Order("services.name ASC").Find(&services).Error
	return services, err
}

func (r *GormCatalogRepository) UpdateService(service *models.Service) error {
	return r.db.Save(service).Error
}

func (r *GormCatalogRepository) CreateTaskTemplate(template *models.TaskTemplate) error {
	return r.db.Create(template).Error
}

func (r *GormCatalogRepository) FindTaskTemplateByID(id uint64) (*models.TaskTemplate, error) {
	var template models.TaskTemplate
	if err := r.db.Preload("FieldTemplates", func(db *gorm.DB) *gorm.DB {
		return db.Order("field_templates.sort_order ASC")
	}).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormCatalogRepository) ListTaskTemplates() ([]models.TaskTemplate, error) {
	var templates []models.TaskTemplate
	err := r.db.Order("task_templates.name ASC").Find(&templates).Error
	return templates, err
}

func (r *GormCatalogRepository) UpdateTaskTemplate(template *models.TaskTemplate) error {
	return r.db.Save(template).Error
}

// DeleteTaskTemplate removes the template together with its field templates,
// its service links and their dependency edges, then re-numbers the remaining
// links of each touched service to a contiguous 0-based order.
func (r *GormCatalogRepository) DeleteTaskTemplate(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var links []models.ServiceTaskTemplate
		if err := tx.Where("task_template_id = ?", id).Find(&links).Error; err != nil {
			return err
		}

		serviceIDs := make([]uint64, 0, len(links))
		for _, link := range links {
			if err := tx.Where("dependent_id = ? OR prerequisite_id = ?", link.ID, link.ID).
				Delete(&models.ServiceTaskDependency{}).Error; err != nil {
				return err
			}
			serviceIDs = append(serviceIDs, link.ServiceID)
		}

		if err := tx.Where("task_template_id = ?", id).
			Delete(&models.ServiceTaskTemplate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_template_id = ?", id).
			Delete(&models.FieldTemplate{}).Error; err != nil {
			return err
		}

		for _, serviceID := range serviceIDs {
			if err := compactServiceTaskOrder(tx, serviceID); err != nil {
				return err
			}
		}

		return tx.Delete(&models.TaskTemplate{}, id).Error
	})
}

func (r *GormCatalogRepository) CreateFieldTemplate(field *models.FieldTemplate) error {
	return r.db.Create(field).Error
}

func (r *GormCatalogRepository) FindFieldTemplateByID(id uint64) (*models.FieldTemplate, error) {
	var field models.FieldTemplate
	if err := r.db.First(&field, id).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *GormCatalogRepository) ListFieldTemplates(taskTemplateID uint64) ([]models.FieldTemplate, error) {
	var fields []models.FieldTemplate
	err := r.db.Where("task_template_id = ?", taskTemplateID).
		Order("field_templates.sort_order ASC").Find(&fields).Error
	return fields, err
}

func (r *GormCatalogRepository) UpdateFieldTemplate(field *models.FieldTemplate) error {
	return r.db.Save(field).Error
}

func (r *GormCatalogRepository) CountFieldTemplates(taskTemplateID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.FieldTemplate{}).
		Where("task_template_id = ?", taskTemplateID).Count(&count).Error
	return count, err
}

// DeleteFieldTemplate removes the field and re-numbers the remaining siblings
// to a contiguous 0-based order.
func (r *GormCatalogRepository) DeleteFieldTemplate(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var field models.FieldTemplate
		if err := tx.First(&field, id).Error; err != nil {
			return err
		}

		if err := tx.Where("field_template_id = ?", id).
			Delete(&models.FieldResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.FieldTemplate{}, id).Error; err != nil {
			return err
		}

		var siblings []models.FieldTemplate
		if err := tx.Where("task_template_id = ?", field.TaskTemplateID).
			Order("field_templates.sort_order ASC").Find(&siblings).Error; err != nil {
			return err
		}
		for i := range siblings {
			if siblings[i].Order != i {
				if err := tx.Model(&siblings[i]).Update("sort_order", i).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *GormCatalogRepository) CreateLookupEntity(entity *models.LookupEntity) error {
	return r.db.Create(entity).Error
}

func (r *GormCatalogRepository) FindLookupEntityByID(id uint64) (*models.LookupEntity, error) {
	var entity models.LookupEntity
	if err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("lookup_options.sort_order ASC")
	}).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *GormCatalogRepository) CreateLookupOption(option *models.LookupOption) error {
	return r.db.Create(option).Error
}

func (r *GormCatalogRepository) CountLookupOptions(lookupEntityID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.LookupOption{}).
		Where("lookup_entity_id = ?", lookupEntityID).Count(&count).Error
	return count, err
}

// DeleteLookupEntity removes the entity with its options and clears field
// template references to it.
func (r *GormCatalogRepository) DeleteLookupEntity(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lookup_entity_id = ?", id).
			Delete(&models.LookupOption{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.FieldTemplate{}).
			Where("lookup_entity_id = ?", id).
			Update("lookup_entity_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.LookupEntity{}, id).Error
	})
}

// DeleteLookupOption removes one option and compacts the sibling order.
func (r *GormCatalogRepository) DeleteLookupOption(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var option models.LookupOption
		if err := tx.First(&option, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.LookupOption{}, id).Error; err != nil {
			return err
		}

		var siblings []models.LookupOption
		if err := tx.Where("lookup_entity_id = ?", option.LookupEntityID).
			Order("lookup_options.sort_order ASC").Find(&siblings).Error; err != nil {
			return err
		}
		for i := range siblings {
			if siblings[i].Order != i {
				if err := tx.Model(&siblings[i]).Update("sort_order", i).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *GormCatalogRepository) CreateServiceTaskTemplate(link *models.ServiceTaskTemplate) error {
	return r.db.Create(link).Error
}

func (r *GormCatalogRepository) FindServiceTaskTemplateByID(id uint64) (*models.ServiceTaskTemplate, error) {
	var link models.ServiceTaskTemplate
	if err := r.db.Preload("TaskTemplate").First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *GormCatalogRepository) ListServiceTaskTemplates(serviceID uint64, activeOnly bool) ([]models.ServiceTaskTemplate, error) {
	var links []models.ServiceTaskTemplate
	query := r.db.Where("service_id = ?", serviceID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Preload("TaskTemplate").
		Order("service_task_templates.sort_order ASC").Find(&links).Error
	return links, err
}

func (r *GormCatalogRepository) UpdateServiceTaskTemplate(link *models.ServiceTaskTemplate) error {
	return r.db.Save(link).Error
}

func (r *GormCatalogRepository) CountActiveServiceTaskTemplates(serviceID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ServiceTaskTemplate{}).
		Where("service_id = ? AND is_active = ?", serviceID, true).Count(&count).Error
	return count, err
}

// DeleteServiceTaskTemplate removes one service-task link together with the
// dependency edges touching it, then re-numbers the remaining links of the
// service to a contiguous 0-based order.
func (r *GormCatalogRepository) DeleteServiceTaskTemplate(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var link models.ServiceTaskTemplate
		if err := tx.First(&link, id).Error; err != nil {
			return err
		}

		if err := tx.Where("dependent_id = ? OR prerequisite_id = ?", id, id).
			Delete(&models.ServiceTaskDependency{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ServiceTaskTemplate{}, id).Error; err != nil {
			return err
		}

		return compactServiceTaskOrder(tx, link.ServiceID)
	})
}

func (r *GormCatalogRepository) CreateDependency(dep *models.ServiceTaskDependency) error {
	return r.db.Create(dep).Error
}

func (r *GormCatalogRepository) FindDependencyByID(id uint64) (*models.ServiceTaskDependency, error) {
	var dep models.ServiceTaskDependency
	if err := r.db.First(&dep, id).Error; err != nil {
		return nil, err
	}
	return &dep, nil
}

func (r *GormCatalogRepository) ListDependencies(serviceID uint64) ([]models.ServiceTaskDependency, error) {
	var deps []models.ServiceTaskDependency
	err := r.db.Where("service_id = ?", serviceID).Find(&deps).Error
	return deps, err
}

func (r *GormCatalogRepository) DependencyExists(serviceID, dependentID, prerequisiteID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ServiceTaskDependency{}).
		Where("service_id = ? AND dependent_id = ? AND prerequisite_id = ?",
			serviceID, dependentID, prerequisiteID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormCatalogRepository) DeleteDependency(id uint64) error {
	return r.db.Delete(&models.ServiceTaskDependency{}, id).Error
}

// compactServiceTaskOrder re-numbers a service's remaining task links to a
// contiguous 0-based sequence.
func compactServiceTaskOrder(tx *gorm.DB, serviceID uint64) error {
	var links []models.ServiceTaskTemplate
	if err := tx.Where("service_id = ?", serviceID).
		Order("service_task_templates.sort_order ASC").Find(&links).Error; err != nil {
		return err
	}
	for i := range links {
		if links[i].Order != i {
			if err := tx.Model(&links[i]).Update("sort_order", i).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
