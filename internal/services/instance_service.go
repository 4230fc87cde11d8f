package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andestrack/field-service-api/internal/events"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"github.com/andestrack/field-service-api/internal/validation"
	"gorm.io/gorm"
)

// InstanceService drives the worker-facing task instance workflow: start,
// record field responses, complete, reopen.
type InstanceService struct {
	instanceRepo repository.InstanceRepository
	linkRepo     repository.LinkRepository
	catalogRepo  repository.CatalogRepository
	publisher    *events.Publisher
}

// NewInstanceService creates a new InstanceService
func NewInstanceService(
	instanceRepo repository.InstanceRepository,
	linkRepo repository.LinkRepository,
	catalogRepo repository.CatalogRepository,
	publisher *events.Publisher,
) *InstanceService {
	return &InstanceService{
		instanceRepo: instanceRepo,
		linkRepo:     linkRepo,
		catalogRepo:  catalogRepo,
		publisher:    publisher,
	}
}

// GetInstance returns a task instance with its responses, checking ownership
func (s *InstanceService) GetInstance(id, userID uint64) (*models.TaskInstance, error) {
	instance, err := s.instanceRepo.FindByID(id, "Responses", "Responses.FieldTemplate")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to find task instance: %w", err)
	}
	if instance.UserID != userID {
		return nil, ErrNotInstanceOwner
	}
	return instance, nil
}

// ListMyInstances returns the caller's task instances with pagination
func (s *InstanceService) ListMyInstances(userID uint64, page, limit int) ([]models.TaskInstance, int64, error) {
	return s.instanceRepo.ListByUser(userID, page, limit)
}

// ListDayInstances returns all task instances on a day
func (s *InstanceService) ListDayInstances(dayID uint64) ([]models.TaskInstance, error) {
	return s.instanceRepo.ListByDay(dayID)
}

// StartInstance marks when the worker began the task. Starting an already
// started instance just keeps the original timestamp.
func (s *InstanceService) StartInstance(id, userID uint64) (*models.TaskInstance, error) {
	instance, err := s.GetInstance(id, userID)
	if err != nil {
		return nil, err
	}
	if instance.Status == models.InstanceStatusCompleted {
		return nil, ErrInstanceAlreadyCompleted
	}
	if instance.StartedAt != nil {
		return instance, nil
	}

	now := time.Now().UTC()
	instance.StartedAt = &now
	if err := s.instanceRepo.Update(instance); err != nil {
		return nil, fmt.Errorf("failed to update task instance: %w", err)
	}
	return instance, nil
}

// SaveFieldResponse records or overwrites the worker's answer to one field.
// The field must belong to the task template the instance's origin resolves
// to, and the value must satisfy the field's schema when one is set.
func (s *InstanceService) SaveFieldResponse(id, userID, fieldTemplateID uint64, value string) (*models.FieldResponse, error) {
	instance, err := s.GetInstance(id, userID)
	if err != nil {
		return nil, err
	}
	if instance.Status == models.InstanceStatusCompleted {
		return nil, ErrInstanceAlreadyCompleted
	}

	templateID, err := s.resolveTemplateID(instance)
	if err != nil {
		return nil, err
	}

	field, err := s.catalogRepo.FindFieldTemplateByID(fieldTemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find field template: %w", err)
	}
	if field.TaskTemplateID != templateID {
		return nil, ErrFieldTemplateMismatch
	}

	if err := validation.ValidateFieldValue(field.ValueSchema, value); err != nil {
		return nil, err
	}

	response := &models.FieldResponse{
		TaskInstanceID:  instance.ID,
		FieldTemplateID: fieldTemplateID,
		Value:           value,
	}
	if err := s.instanceRepo.SaveResponse(response); err != nil {
		return nil, fmt.Errorf("failed to save field response: %w", err)
	}
	return response, nil
}

// CompleteInstance marks an instance completed once every required field of
// its template has a non-empty response.
func (s *InstanceService) CompleteInstance(ctx context.Context, id, userID uint64) (*models.TaskInstance, error) {
	instance, err := s.GetInstance(id, userID)
	if err != nil {
		return nil, err
	}
	if instance.Status == models.InstanceStatusCompleted {
		return nil, ErrInstanceAlreadyCompleted
	}

	templateID, err := s.resolveTemplateID(instance)
	if err != nil {
		return nil, err
	}

	fields, err := s.catalogRepo.ListFieldTemplates(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list field templates: %w", err)
	}
	responses, err := s.instanceRepo.ListResponses(instance.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	answered := make(map[uint64]bool, len(responses))
	for _, resp := range responses {
		if resp.Value != "" {
			answered[resp.FieldTemplateID] = true
		}
	}
	for _, field := range fields {
		if field.IsRequired && !answered[field.ID] {
			return nil, ErrMissingRequiredFields
		}
	}

	now := time.Now().UTC()
	instance.Status = models.InstanceStatusCompleted
	instance.CompletedAt = &now
	if err := s.instanceRepo.Update(instance); err != nil {
		return nil, fmt.Errorf("failed to update task instance: %w", err)
	}

	s.publisher.Publish(ctx, events.EventTaskInstanceComplete, instance.ID, instance)
	return instance, nil
}

// ReopenInstance moves a completed instance back to draft, keeping its
// responses.
func (s *InstanceService) ReopenInstance(id, userID uint64) (*models.TaskInstance, error) {
	instance, err := s.GetInstance(id, userID)
	if err != nil {
		return nil, err
	}
	if instance.Status != models.InstanceStatusCompleted {
		return nil, ErrInstanceNotCompleted
	}

	instance.Status = models.InstanceStatusDraft
	instance.CompletedAt = nil
	if err := s.instanceRepo.Update(instance); err != nil {
		return nil, fmt.Errorf("failed to update task instance: %w", err)
	}
	return instance, nil
}

// resolveTemplateID follows the instance's origin to the task template whose
// form defines the instance's fields.
func (s *InstanceService) resolveTemplateID(instance *models.TaskInstance) (uint64, error) {
	switch {
	case instance.ServiceTaskTemplateID != nil:
		row, err := s.catalogRepo.FindServiceTaskTemplateByID(*instance.ServiceTaskTemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrInstanceOriginUnavailable
			}
			return 0, fmt.Errorf("failed to find service task template: %w", err)
		}
		return row.TaskTemplateID, nil
	case instance.WorkOrderDayTaskTemplateID != nil:
		link, err := s.linkRepo.FindDayTaskTemplateByID(*instance.WorkOrderDayTaskTemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrInstanceOriginUnavailable
			}
			return 0, fmt.Errorf("failed to find day task template link: %w", err)
		}
		return link.TaskTemplateID, nil
	default:
		return 0, ErrInstanceOriginUnavailable
	}
}
