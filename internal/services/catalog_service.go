package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"github.com/andestrack/field-service-api/internal/validation"
	"gorm.io/gorm"
)

// CatalogService manages the reusable catalog: services, task templates,
// field templates and lookup entities.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// CreateService creates a new service
func (s *CatalogService) CreateService(name, description string) (*models.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	service := &models.Service{Name: name, Description: description}
	if err := s.catalogRepo.CreateService(service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

// GetService returns a service with its task template links
func (s *CatalogService) GetService(id uint64) (*models.Service, error) {
	service, err := s.catalogRepo.FindServiceByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return service, nil
}

// ListServices returns all services
func (s *CatalogService) ListServices() ([]models.Service, error) {
	return s.catalogRepo.ListServices()
}

// UpdateService updates a service's name and description
func (s *CatalogService) UpdateService(id uint64, name, description string) (*models.Service, error) {
	service, err := s.GetService(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	service.Name = name
	service.Description = description
	if err := s.catalogRepo.UpdateService(service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

// CreateTaskTemplate creates a new task template
func (s *CatalogService) CreateTaskTemplate(name, description string) (*models.TaskTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	template := &models.TaskTemplate{Name: name, Description: description}
	if err := s.catalogRepo.CreateTaskTemplate(template); err != nil {
		return nil, fmt.Errorf("failed to create task template: %w", err)
	}
	return template, nil
}

// GetTaskTemplate returns a task template with its field templates
func (s *CatalogService) GetTaskTemplate(id uint64) (*models.TaskTemplate, error) {
	template, err := s.catalogRepo.FindTaskTemplateByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find task template: %w", err)
	}
	return template, nil
}

// ListTaskTemplates returns all task templates
func (s *CatalogService) ListTaskTemplates() ([]models.TaskTemplate, error) {
	return s.catalogRepo.ListTaskTemplates()
}

// UpdateTaskTemplate renames a task template. Existing task instances keep
// the label snapshotted at materialization time.
func (s *CatalogService) UpdateTaskTemplate(id uint64, name, description string) (*models.TaskTemplate, error) {
	template, err := s.GetTaskTemplate(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	template.Name = name
	template.Description = description
	if err := s.catalogRepo.UpdateTaskTemplate(template); err != nil {
		return nil, fmt.Errorf("failed to update task template: %w", err)
	}
	return template, nil
}

// DeleteTaskTemplate removes a task template with its fields, service links
// and the dependency edges touching those links.
func (s *CatalogService) DeleteTaskTemplate(id uint64) error {
	if _, err := s.GetTaskTemplate(id); err != nil {
		return err
	}
	if err := s.catalogRepo.DeleteTaskTemplate(id); err != nil {
		return fmt.Errorf("failed to delete task template: %w", err)
	}
	return nil
}

// CreateFieldTemplateInput represents input for adding a field to a task
// template's form
type CreateFieldTemplateInput struct {
	TaskTemplateID uint64
	Label          string
	FieldType      models.FieldType
	IsRequired     bool
	ValueSchema    string
	LookupEntityID *uint64
}

// CreateFieldTemplate appends a field to the end of a task template's form.
func (s *CatalogService) CreateFieldTemplate(input CreateFieldTemplateInput) (*models.FieldTemplate, error) {
	if _, err := s.GetTaskTemplate(input.TaskTemplateID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Label) == "" {
		return nil, ErrNameRequired
	}

	switch input.FieldType {
	case models.FieldTypeText, models.FieldTypeNumber, models.FieldTypeBoolean,
		models.FieldTypeDate, models.FieldTypeSelect, models.FieldTypeSignature:
	default:
		return nil, ErrInvalidFieldType
	}

	if input.FieldType == models.FieldTypeSelect {
		if input.LookupEntityID == nil {
			return nil, ErrLookupEntityRequired
		}
		if _, err := s.catalogRepo.FindLookupEntityByID(*input.LookupEntityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLookupEntityNotFound
			}
			return nil, fmt.Errorf("failed to find lookup entity: %w", err)
		}
	}

	if err := validation.ValidateSchema(input.ValueSchema); err != nil {
		return nil, ErrInvalidFieldSchema
	}

	count, err := s.catalogRepo.CountFieldTemplates(input.TaskTemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count field templates: %w", err)
	}

	field := &models.FieldTemplate{
		TaskTemplateID: input.TaskTemplateID,
		Label:          strings.TrimSpace(input.Label),
		FieldType:      input.FieldType,
		Order:          int(count),
		IsRequired:     input.IsRequired,
		ValueSchema:    input.ValueSchema,
		LookupEntityID: input.LookupEntityID,
	}
	if err := s.catalogRepo.CreateFieldTemplate(field); err != nil {
		return nil, fmt.Errorf("failed to create field template: %w", err)
	}
	return field, nil
}

// ListFieldTemplates returns a task template's fields in form order
func (s *CatalogService) ListFieldTemplates(taskTemplateID uint64) ([]models.FieldTemplate, error) {
	if _, err := s.GetTaskTemplate(taskTemplateID); err != nil {
		return nil, err
	}
	return s.catalogRepo.ListFieldTemplates(taskTemplateID)
}

// UpdateFieldTemplate updates a field's label, required flag and value schema
func (s *CatalogService) UpdateFieldTemplate(id uint64, label string, isRequired bool, valueSchema string) (*models.FieldTemplate, error) {
	field, err := s.catalogRepo.FindFieldTemplateByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find field template: %w", err)
	}

	if strings.TrimSpace(label) == "" {
		return nil, ErrNameRequired
	}
	if err := validation.ValidateSchema(valueSchema); err != nil {
		return nil, ErrInvalidFieldSchema
	}

	field.Label = strings.TrimSpace(label)
	field.IsRequired = isRequired
	field.ValueSchema = valueSchema
	if err := s.catalogRepo.UpdateFieldTemplate(field); err != nil {
		return nil, fmt.Errorf("failed to update field template: %w", err)
	}
	return field, nil
}

// DeleteFieldTemplate removes a field; the remaining siblings are re-numbered
// to a contiguous 0-based order.
func (s *CatalogService) DeleteFieldTemplate(id uint64) error {
	if _, err := s.catalogRepo.FindFieldTemplateByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFieldTemplateNotFound
		}
		return fmt.Errorf("failed to find field template: %w", err)
	}
	if err := s.catalogRepo.DeleteFieldTemplate(id); err != nil {
		return fmt.Errorf("failed to delete field template: %w", err)
	}
	return nil
}

// CreateLookupEntity creates a named option list for select fields
func (s *CatalogService) CreateLookupEntity(name string) (*models.LookupEntity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	entity := &models.LookupEntity{Name: name}
	if err := s.catalogRepo.CreateLookupEntity(entity); err != nil {
		return nil, fmt.Errorf("failed to create lookup entity: %w", err)
	}
	return entity, nil
}

// GetLookupEntity returns a lookup entity with its options
func (s *CatalogService) GetLookupEntity(id uint64) (*models.LookupEntity, error) {
	entity, err := s.catalogRepo.FindLookupEntityByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLookupEntityNotFound
		}
		return nil, fmt.Errorf("failed to find lookup entity: %w", err)
	}
	return entity, nil
}

// AddLookupOption appends an option to the end of a lookup entity's list.
func (s *CatalogService) AddLookupOption(lookupEntityID uint64, value string) (*models.LookupOption, error) {
	if _, err := s.GetLookupEntity(lookupEntityID); err != nil {
		return nil, err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrNameRequired
	}

	count, err := s.catalogRepo.CountLookupOptions(lookupEntityID)
	if err != nil {
		return nil, fmt.Errorf("failed to count lookup options: %w", err)
	}

	option := &models.LookupOption{
		LookupEntityID: lookupEntityID,
		Value:          value,
		Order:          int(count),
	}
	if err := s.catalogRepo.CreateLookupOption(option); err != nil {
		return nil, fmt.Errorf("failed to create lookup option: %w", err)
	}
	return option, nil
}

// DeleteLookupEntity removes the entity with its options; select fields that
// referenced it lose the reference.
func (s *CatalogService) DeleteLookupEntity(id uint64) error {
	if _, err := s.GetLookupEntity(id); err != nil {
		return err
	}
	if err := s.catalogRepo.DeleteLookupEntity(id); err != nil {
		return fmt.Errorf("failed to delete lookup entity: %w", err)
	}
	return nil
}

// DeleteLookupOption removes one option and compacts the sibling order
func (s *CatalogService) DeleteLookupOption(id uint64) error {
	if err := s.catalogRepo.DeleteLookupOption(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLookupOptionNotFound
		}
		return fmt.Errorf("failed to delete lookup option: %w", err)
	}
	return nil
}
