package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"gorm.io/gorm"
)

// LinkageService manages the association records between work-order days,
// services and task templates, plus the per-service dependency edges. It
// triggers the materializer after every structural addition so instances for
// already-assigned workers are backfilled.
type LinkageService struct {
	woRepo       repository.WorkOrderRepository
	linkRepo     repository.LinkRepository
	catalogRepo  repository.CatalogRepository
	instanceRepo repository.InstanceRepository
	materializer *MaterializerService
}

// NewLinkageService creates a new LinkageService
func NewLinkageService(
	woRepo repository.WorkOrderRepository,
	linkRepo repository.LinkRepository,
	catalogRepo repository.CatalogRepository,
	instanceRepo repository.InstanceRepository,
	materializer *MaterializerService,
) *LinkageService {
	return &LinkageService{
		woRepo:       woRepo,
		linkRepo:     linkRepo,
		catalogRepo:  catalogRepo,
		instanceRepo: instanceRepo,
		materializer: materializer,
	}
}

// AddServiceToDay links a service to a day. An existing active link is a
// duplicate error; an inactive link is reactivated instead and instances are
// re-materialized, which the idempotency check keeps safe. When no order is
// supplied the link appends after the existing active links.
func (s *LinkageService) AddServiceToDay(ctx context.Context, dayID, serviceID uint64, order *int) (*models.WorkOrderDayService, error) {
	day, err := s.woRepo.FindDayByID(dayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to find day: %w", err)
	}
	if _, err := s.catalogRepo.FindServiceByID(serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}

	existing, err := s.linkRepo.FindDayService(dayID, serviceID)
	if err == nil {
		if existing.IsActive {
			return nil, ErrDuplicateServiceLink
		}

		existing.IsActive = true
		if order != nil {
			existing.Order = *order
		}
		if err := s.linkRepo.UpdateDayService(existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate day service link: %w", err)
		}
		if err := s.materializer.MaterializeForServiceLink(ctx, day, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check day service link: %w", err)
	}

	linkOrder := 0
	if order != nil {
		linkOrder = *order
	} else {
		count, err := s.linkRepo.CountActiveDayServices(dayID)
		if err != nil {
			return nil, fmt.Errorf("failed to count day services: %w", err)
		}
		linkOrder = int(count)
	}

	link := &models.WorkOrderDayService{
		WorkOrderDayID: dayID,
		ServiceID:      serviceID,
		Order:          linkOrder,
		IsActive:       true,
	}
	if err := s.linkRepo.CreateDayService(link); err != nil {
		return nil, fmt.Errorf("failed to create day service link: %w", err)
	}

	if err := s.materializer.MaterializeForServiceLink(ctx, day, link); err != nil {
		return nil, err
	}

	return link, nil
}

// RemoveServiceFromDay soft-deactivates a day-service link and reports how
// many instances under it already carry recorded work (completed or with
// field responses). Existing instances are never deleted; the count is
// informational and deactivation always succeeds.
func (s *LinkageService) RemoveServiceFromDay(linkID uint64) (int64, error) {
	link, err := s.linkRepo.FindDayServiceByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrDayServiceLinkNotFound
		}
		return 0, fmt.Errorf("failed to find day service link: %w", err)
	}

	link.IsActive = false
	if err := s.linkRepo.UpdateDayService(link); err != nil {
		return 0, fmt.Errorf("failed to deactivate day service link: %w", err)
	}

	orphaned, err := s.instanceRepo.CountOrphanedByDayService(link.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count orphaned instances: %w", err)
	}

	return orphaned, nil
}

// AddTaskTemplateToDay links a task template directly to a day, bypassing
// services. Duplicate handling mirrors AddServiceToDay: at most one link per
// (day, template), with inactive links reactivated.
func (s *LinkageService) AddTaskTemplateToDay(ctx context.Context, dayID, taskTemplateID uint64, order *int, isRequired bool) (*models.WorkOrderDayTaskTemplate, error) {
	day, err := s.woRepo.FindDayByID(dayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to find day: %w", err)
	}
	if _, err := s.catalogRepo.FindTaskTemplateByID(taskTemplateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find task template: %w", err)
	}

	existing, err := s.linkRepo.FindDayTaskTemplate(dayID, taskTemplateID)
	if err == nil {
		if existing.IsActive {
			return nil, ErrDuplicateTaskTemplateLink
		}

		existing.IsActive = true
		existing.IsRequired = isRequired
		if order != nil {
			existing.Order = *order
		}
		if err := s.linkRepo.UpdateDayTaskTemplate(existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate day task link: %w", err)
		}
		if err := s.materializer.MaterializeForDayTaskLink(ctx, day, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check day task link: %w", err)
	}

	linkOrder := 0
	if order != nil {
		linkOrder = *order
	} else {
		count, err := s.linkRepo.CountActiveDayTaskTemplates(dayID)
		if err != nil {
			return nil, fmt.Errorf("failed to count day task links: %w", err)
		}
		linkOrder = int(count)
	}

	link := &models.WorkOrderDayTaskTemplate{
		WorkOrderDayID: dayID,
		TaskTemplateID: taskTemplateID,
		Order:          linkOrder,
		IsRequired:     isRequired,
		IsActive:       true,
	}
	if err := s.linkRepo.CreateDayTaskTemplate(link); err != nil {
		return nil, fmt.Errorf("failed to create day task link: %w", err)
	}

	if err := s.materializer.MaterializeForDayTaskLink(ctx, day, link); err != nil {
		return nil, err
	}

	return link, nil
}

// RemoveTaskTemplateFromDay soft-deactivates a standalone day-task link and
// reports the orphaned instance count, mirroring RemoveServiceFromDay.
func (s *LinkageService) RemoveTaskTemplateFromDay(linkID uint64) (int64, error) {
	link, err := s.linkRepo.FindDayTaskTemplateByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrDayTaskLinkNotFound
		}
		return 0, fmt.Errorf("failed to find day task link: %w", err)
	}

	link.IsActive = false
	if err := s.linkRepo.UpdateDayTaskTemplate(link); err != nil {
		return 0, fmt.Errorf("failed to deactivate day task link: %w", err)
	}

	orphaned, err := s.instanceRepo.CountOrphanedByDayTaskTemplate(link.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count orphaned instances: %w", err)
	}

	return orphaned, nil
}

// ReorderServices assigns order = positional index for the supplied day
// service link ids. The list is not validated for completeness: a partial
// list reorders only the supplied subset and leaves the rest untouched. Ids
// not belonging to the day are skipped.
func (s *LinkageService) ReorderServices(dayID uint64, linkIDs []uint64) error {
	for position, linkID := range linkIDs {
		link, err := s.linkRepo.FindDayServiceByID(linkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return fmt.Errorf("failed to find day service link: %w", err)
		}
		if link.WorkOrderDayID != dayID {
			continue
		}

		link.Order = position
		if err := s.linkRepo.UpdateDayService(link); err != nil {
			return fmt.Errorf("failed to reorder day service link: %w", err)
		}
	}
	return nil
}

// ReorderTaskTemplates assigns order = positional index for the supplied day
// task link ids, with the same lenient partial-list behavior as
// ReorderServices.
func (s *LinkageService) ReorderTaskTemplates(dayID uint64, linkIDs []uint64) error {
	for position, linkID := range linkIDs {
		link, err := s.linkRepo.FindDayTaskTemplateByID(linkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return fmt.Errorf("failed to find day task link: %w", err)
		}
		if link.WorkOrderDayID != dayID {
			continue
		}

		link.Order = position
		if err := s.linkRepo.UpdateDayTaskTemplate(link); err != nil {
			return fmt.Errorf("failed to reorder day task link: %w", err)
		}
	}
	return nil
}

// UpdateServiceTaskTemplate changes a routine task link's required flag and
// day-number targeting. Existing instances are untouched.
func (s *LinkageService) UpdateServiceTaskTemplate(id uint64, isRequired bool, dayNumber *int) (*models.ServiceTaskTemplate, error) {
	link, err := s.catalogRepo.FindServiceTaskTemplateByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceTaskTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find service task template: %w", err)
	}
	if dayNumber != nil && *dayNumber < 1 {
		return nil, ErrInvalidDayNumber
	}

	link.IsRequired = isRequired
	link.DayNumber = dayNumber
	if err := s.catalogRepo.UpdateServiceTaskTemplate(link); err != nil {
		return nil, fmt.Errorf("failed to update service task template: %w", err)
	}
	return link, nil
}

// RemoveTaskTemplateFromService deletes one routine task link together with
// the dependency edges touching it; sibling order is compacted.
func (s *LinkageService) RemoveTaskTemplateFromService(id uint64) error {
	if _, err := s.catalogRepo.FindServiceTaskTemplateByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceTaskTemplateNotFound
		}
		return fmt.Errorf("failed to find service task template: %w", err)
	}
	if err := s.catalogRepo.DeleteServiceTaskTemplate(id); err != nil {
		return fmt.Errorf("failed to delete service task template: %w", err)
	}
	return nil
}

// ListServiceTaskDependencies returns a service's dependency edges
func (s *LinkageService) ListServiceTaskDependencies(serviceID uint64) ([]models.ServiceTaskDependency, error) {
	if _, err := s.catalogRepo.FindServiceByID(serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return s.catalogRepo.ListDependencies(serviceID)
}

// RemoveServiceTaskDependency deletes one dependency edge
func (s *LinkageService) RemoveServiceTaskDependency(id uint64) error {
	if _, err := s.catalogRepo.FindDependencyByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDependencyNotFound
		}
		return fmt.Errorf("failed to find dependency: %w", err)
	}
	if err := s.catalogRepo.DeleteDependency(id); err != nil {
		return fmt.Errorf("failed to delete dependency: %w", err)
	}
	return nil
}

// ListDayServices returns a day's service links in order
func (s *LinkageService) ListDayServices(dayID uint64, activeOnly bool) ([]models.WorkOrderDayService, error) {
	if _, err := s.woRepo.FindDayByID(dayID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to find day: %w", err)
	}
	return s.linkRepo.ListDayServices(dayID, activeOnly)
}

// ListDayTaskTemplates returns a day's standalone task links in order
func (s *LinkageService) ListDayTaskTemplates(dayID uint64, activeOnly bool) ([]models.WorkOrderDayTaskTemplate, error) {
	if _, err := s.woRepo.FindDayByID(dayID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to find day: %w", err)
	}
	return s.linkRepo.ListDayTaskTemplates(dayID, activeOnly)
}

// CreateDependencyInput holds the endpoints of a proposed dependency edge.
type CreateDependencyInput struct {
	ServiceID      uint64
	DependentID    uint64
	PrerequisiteID uint64
}

// CreateServiceTaskDependency adds a prerequisite edge between two task
// templates of one service. The edge must join distinct templates of the
// given service, must not already exist, and must not close a cycle.
func (s *LinkageService) CreateServiceTaskDependency(input CreateDependencyInput) (*models.ServiceTaskDependency, error) {
	if input.DependentID == input.PrerequisiteID {
		return nil, ErrSelfDependency
	}

	dependent, err := s.catalogRepo.FindServiceTaskTemplateByID(input.DependentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceTaskTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find dependent: %w", err)
	}
	prerequisite, err := s.catalogRepo.FindServiceTaskTemplateByID(input.PrerequisiteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceTaskTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find prerequisite: %w", err)
	}

	if dependent.ServiceID != input.ServiceID || prerequisite.ServiceID != input.ServiceID {
		return nil, ErrCrossServiceDependency
	}

	exists, err := s.catalogRepo.DependencyExists(input.ServiceID, input.DependentID, input.PrerequisiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to check dependency: %w", err)
	}
	if exists {
		return nil, ErrDuplicateDependency
	}

	existing, err := s.catalogRepo.ListDependencies(input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependencies: %w", err)
	}
	edges := make([]DependencyEdge, 0, len(existing))
	for _, dep := range existing {
		edges = append(edges, DependencyEdge{
			DependentID:    dep.DependentID,
			PrerequisiteID: dep.PrerequisiteID,
		})
	}
	proposed := DependencyEdge{
		DependentID:    input.DependentID,
		PrerequisiteID: input.PrerequisiteID,
	}
	if WouldCreateCycle(edges, proposed) {
		return nil, ErrCycleDetected
	}

	dep := &models.ServiceTaskDependency{
		ServiceID:      input.ServiceID,
		DependentID:    input.DependentID,
		PrerequisiteID: input.PrerequisiteID,
	}
	if err := s.catalogRepo.CreateDependency(dep); err != nil {
		return nil, fmt.Errorf("failed to create dependency: %w", err)
	}

	return dep, nil
}

// AddTaskTemplateToService creates a new routine task template on a service
// and backfills instances on every day the service is actively linked to.
func (s *LinkageService) AddTaskTemplateToService(ctx context.Context, serviceID, taskTemplateID uint64, order *int, isRequired bool, dayNumber *int) (*models.ServiceTaskTemplate, error) {
	if _, err := s.catalogRepo.FindServiceByID(serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	if _, err := s.catalogRepo.FindTaskTemplateByID(taskTemplateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find task template: %w", err)
	}
	if dayNumber != nil && *dayNumber < 1 {
		return nil, ErrInvalidDayNumber
	}

	linkOrder := 0
	if order != nil {
		linkOrder = *order
	} else {
		count, err := s.catalogRepo.CountActiveServiceTaskTemplates(serviceID)
		if err != nil {
			return nil, fmt.Errorf("failed to count service task templates: %w", err)
		}
		linkOrder = int(count)
	}

	link := &models.ServiceTaskTemplate{
		ServiceID:      serviceID,
		TaskTemplateID: taskTemplateID,
		Order:          linkOrder,
		IsRequired:     isRequired,
		DayNumber:      dayNumber,
		IsActive:       true,
	}
	if err := s.catalogRepo.CreateServiceTaskTemplate(link); err != nil {
		return nil, fmt.Errorf("failed to create service task template: %w", err)
	}

	if err := s.materializer.MaterializeForServiceTaskTemplate(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}
