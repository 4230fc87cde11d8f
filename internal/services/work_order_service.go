package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andestrack/field-service-api/internal/events"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"gorm.io/gorm"
)

// WorkOrderService owns the work-order lifecycle: expansion of the date range
// into days, seeding of day-task links and same-day dependencies from the
// selected service, worker assignment, and cascading deletion.
type WorkOrderService struct {
	woRepo       repository.WorkOrderRepository
	customerRepo repository.CustomerRepository
	catalogRepo  repository.CatalogRepository
	userRepo     repository.UserRepository
	materializer *MaterializerService
	publisher    *events.Publisher
}

// NewWorkOrderService creates a new WorkOrderService
func NewWorkOrderService(
	woRepo repository.WorkOrderRepository,
	customerRepo repository.CustomerRepository,
	catalogRepo repository.CatalogRepository,
	userRepo repository.UserRepository,
	materializer *MaterializerService,
	publisher *events.Publisher,
) *WorkOrderService {
	return &WorkOrderService{
		woRepo:       woRepo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		userRepo:     userRepo,
		materializer: materializer,
		publisher:    publisher,
	}
}

// CreateWorkOrderInput represents input for creating a work order
type CreateWorkOrderInput struct {
	CustomerID     uint64
	FaenaID        uint64
	ServiceID      *uint64
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	RequiredPeople *int
	Notes          string
}

// CreateWorkOrder validates the input, then expands the inclusive date range
// into one WorkOrderDay per calendar day (dayNumber 1..N in calendar order)
// and seeds day-task links and same-day dependency rows from the selected
// service, all in one transaction. No task instances are created here; those
// materialize when workers are assigned to days.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, input CreateWorkOrderInput) (*models.WorkOrder, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.customerRepo.FindByID(input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	faena, err := s.customerRepo.FindFaenaByID(input.FaenaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFaenaNotFound
		}
		return nil, fmt.Errorf("failed to find faena: %w", err)
	}
	if faena.CustomerID != input.CustomerID {
		return nil, ErrFaenaCustomerMismatch
	}

	start := utcMidnight(input.StartDate)
	end := utcMidnight(input.EndDate)
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	if input.RequiredPeople != nil && *input.RequiredPeople < 1 {
		return nil, ErrRequiredPeopleBelowOne
	}

	var templateRows []models.ServiceTaskTemplate
	var depSeeds []repository.DependencySeed
	if input.ServiceID != nil {
		if _, err := s.catalogRepo.FindServiceByID(*input.ServiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("failed to find service: %w", err)
		}

		templateRows, err = s.catalogRepo.ListServiceTaskTemplates(*input.ServiceID, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list service task templates: %w", err)
		}

		deps, err := s.catalogRepo.ListDependencies(*input.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to list service dependencies: %w", err)
		}
		for _, dep := range deps {
			depSeeds = append(depSeeds, repository.DependencySeed{
				DependentSTT:    dep.DependentID,
				PrerequisiteSTT: dep.PrerequisiteID,
			})
		}
	}

	wo := &models.WorkOrder{
		CustomerID:     input.CustomerID,
		FaenaID:        input.FaenaID,
		ServiceID:      input.ServiceID,
		Name:           input.Name,
		Status:         models.WorkOrderStatusDraft,
		StartDate:      start,
		EndDate:        end,
		RequiredPeople: input.RequiredPeople,
		Notes:          input.Notes,
	}

	var seeds []repository.DaySeed
	dayNumber := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dayNumber++
		seed := repository.DaySeed{
			Day: models.WorkOrderDay{
				DayDate:        date,
				DayNumber:      dayNumber,
				Status:         models.DayStatusPending,
				RequiredPeople: input.RequiredPeople,
			},
		}

		for _, row := range templateRows {
			if row.DayNumber != nil && *row.DayNumber != dayNumber {
				continue
			}
			sttID := row.ID
			seed.Links = append(seed.Links, models.WorkOrderDayTaskTemplate{
				TaskTemplateID:        row.TaskTemplateID,
				ServiceTaskTemplateID: &sttID,
				Order:                 row.Order,
				IsRequired:            row.IsRequired,
				IsActive:              true,
			})
		}

		seeds = append(seeds, seed)
	}

	if err := s.woRepo.CreateExpanded(wo, seeds, depSeeds); err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	s.publisher.Publish(ctx, events.EventWorkOrderCreated, wo.ID, wo)

	return s.woRepo.FindByID(wo.ID, "Customer", "Faena", "Days")
}

// GetWorkOrder returns a work order with its days and relations
func (s *WorkOrderService) GetWorkOrder(id uint64) (*models.WorkOrder, error) {
	wo, err := s.woRepo.FindByID(id, "Customer", "Faena", "Service", "Days", "Days.Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}
	return wo, nil
}

// ListWorkOrders retrieves work orders matching the filter
func (s *WorkOrderService) ListWorkOrders(filter repository.WorkOrderFilter) ([]models.WorkOrder, int64, error) {
	workOrders, total, err := s.woRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work orders: %w", err)
	}
	return workOrders, total, nil
}

// UpdateStatus moves a work order to a new lifecycle status
func (s *WorkOrderService) UpdateStatus(id uint64, status models.WorkOrderStatus) (*models.WorkOrder, error) {
	switch status {
	case models.WorkOrderStatusDraft, models.WorkOrderStatusScheduled,
		models.WorkOrderStatusInProgress, models.WorkOrderStatusCompleted,
		models.WorkOrderStatusCancelled:
	default:
		return nil, ErrInvalidWorkOrderStatus
	}

	wo, err := s.woRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}

	wo.Status = status
	if err := s.woRepo.Update(wo); err != nil {
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}
	return wo, nil
}

// DeleteWorkOrder removes a draft or cancelled work order together with its
// days, links, dependencies, assignments, instances and responses.
func (s *WorkOrderService) DeleteWorkOrder(id uint64) error {
	wo, err := s.woRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkOrderNotFound
		}
		return fmt.Errorf("failed to find work order: %w", err)
	}

	if wo.Status != models.WorkOrderStatusDraft && wo.Status != models.WorkOrderStatusCancelled {
		return ErrWorkOrderNotDeletable
	}

	if err := s.woRepo.DeleteCascade(id); err != nil {
		return fmt.Errorf("failed to delete work order: %w", err)
	}
	return nil
}

// GetDay returns one work order day
func (s *WorkOrderService) GetDay(dayID uint64) (*models.WorkOrderDay, error) {
	day, err := s.woRepo.FindDayByID(dayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to find day: %w", err)
	}
	return day, nil
}

// ListDays returns a work order's days in day-number order
func (s *WorkOrderService) ListDays(workOrderID uint64) ([]models.WorkOrderDay, error) {
	if _, err := s.woRepo.FindByID(workOrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}
	return s.woRepo.ListDays(workOrderID)
}

// GetApplicableTasksForDay resolves the tasks applying to one day
func (s *WorkOrderService) GetApplicableTasksForDay(dayID uint64) (*ApplicableTasks, error) {
	day, err := s.GetDay(dayID)
	if err != nil {
		return nil, err
	}
	return s.materializer.GetApplicableTasks(day)
}

// AssignUsersInput represents input for assigning workers to a day
type AssignUsersInput struct {
	DayID   uint64
	UserIDs []uint64
}

// AssignUsers assigns workers to a day and materializes their task instances.
// Re-assigning an already-assigned worker is an idempotent no-op thanks to
// the materializer's existence check.
func (s *WorkOrderService) AssignUsers(ctx context.Context, input AssignUsersInput) error {
	if len(input.UserIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	day, err := s.woRepo.FindDayByID(input.DayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDayNotFound
		}
		return fmt.Errorf("failed to find day: %w", err)
	}

	userIDs := uniqueUint64(input.UserIDs)

	count, err := s.userRepo.CountByIDs(userIDs)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(userIDs) {
		return ErrInvalidAssignee
	}

	if err := s.woRepo.AssignUsers(day.ID, userIDs); err != nil {
		return fmt.Errorf("failed to assign users: %w", err)
	}

	tasks, err := s.materializer.GetApplicableTasks(day)
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if err := s.materializer.MaterializeForUser(ctx, day.ID, userID, tasks); err != nil {
			return err
		}
	}

	return nil
}

// UnassignUsers removes workers from a day. Their task instances remain.
func (s *WorkOrderService) UnassignUsers(dayID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	if _, err := s.woRepo.FindDayByID(dayID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDayNotFound
		}
		return fmt.Errorf("failed to find day: %w", err)
	}

	if err := s.woRepo.UnassignUsers(dayID, uniqueUint64(userIDs)); err != nil {
		return fmt.Errorf("failed to unassign users: %w", err)
	}
	return nil
}

// utcMidnight truncates a timestamp to UTC midnight of its calendar day.
func utcMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
