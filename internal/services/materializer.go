package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/andestrack/field-service-api/internal/events"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"gorm.io/gorm"
)

// MaterializerService resolves the tasks applying to a day and idempotently
// creates task instances for assigned workers. Structural mutations (assign
// worker, add service to day, add standalone task, add routine task template)
// call into it to backfill missing instances; it never deletes or duplicates
// existing ones.
type MaterializerService struct {
	woRepo       repository.WorkOrderRepository
	linkRepo     repository.LinkRepository
	catalogRepo  repository.CatalogRepository
	instanceRepo repository.InstanceRepository
	userRepo     repository.UserRepository
	publisher    *events.Publisher
}

// NewMaterializerService creates a new MaterializerService
func NewMaterializerService(
	woRepo repository.WorkOrderRepository,
	linkRepo repository.LinkRepository,
	catalogRepo repository.CatalogRepository,
	instanceRepo repository.InstanceRepository,
	userRepo repository.UserRepository,
	publisher *events.Publisher,
) *MaterializerService {
	return &MaterializerService{
		woRepo:       woRepo,
		linkRepo:     linkRepo,
		catalogRepo:  catalogRepo,
		instanceRepo: instanceRepo,
		userRepo:     userRepo,
		publisher:    publisher,
	}
}

// MaterializeForUser creates the missing task instances for one worker on one
// day, fanning out over every applicable task. A nil precomputed set is
// resolved on the fly. A vanished day or user makes the whole call a no-op;
// a vanished template skips only its own tuple.
func (s *MaterializerService) MaterializeForUser(ctx context.Context, dayID, userID uint64, precomputed *ApplicableTasks) error {
	day, err := s.woRepo.FindDayByID(dayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find day: %w", err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	tasks := precomputed
	if tasks == nil {
		tasks, err = s.GetApplicableTasks(day)
		if err != nil {
			return err
		}
	}

	for _, routine := range tasks.Routine {
		origin := RoutineOrigin{
			DayServiceID:          routine.DayServiceID,
			ServiceTaskTemplateID: routine.ServiceTaskTemplateID,
		}
		if err := s.materialize(ctx, day.ID, userID, routine.TaskTemplateID, origin); err != nil {
			return err
		}
	}
	for _, standalone := range tasks.Standalone {
		origin := StandaloneOrigin{DayTaskTemplateID: standalone.LinkID}
		if err := s.materialize(ctx, day.ID, userID, standalone.TaskTemplateID, origin); err != nil {
			return err
		}
	}

	return nil
}

// MaterializeForServiceLink creates the missing instances for every worker
// assigned to the day, covering the routine tasks a (newly added or
// reactivated) day-service link contributes.
func (s *MaterializerService) MaterializeForServiceLink(ctx context.Context, day *models.WorkOrderDay, link *models.WorkOrderDayService) error {
	rows, err := s.catalogRepo.ListServiceTaskTemplates(link.ServiceID, true)
	if err != nil {
		return fmt.Errorf("failed to list service task templates: %w", err)
	}

	assignments, err := s.woRepo.ListAssignments(day.ID)
	if err != nil {
		return fmt.Errorf("failed to list day assignments: %w", err)
	}

	for _, row := range rows {
		if row.DayNumber != nil && *row.DayNumber != day.DayNumber {
			continue
		}
		origin := RoutineOrigin{DayServiceID: link.ID, ServiceTaskTemplateID: row.ID}
		for _, assignment := range assignments {
			if err := s.materialize(ctx, day.ID, assignment.UserID, row.TaskTemplateID, origin); err != nil {
				return err
			}
		}
	}

	return nil
}

// MaterializeForDayTaskLink creates the missing instances for every worker
// assigned to the day for one standalone day-task link.
func (s *MaterializerService) MaterializeForDayTaskLink(ctx context.Context, day *models.WorkOrderDay, link *models.WorkOrderDayTaskTemplate) error {
	assignments, err := s.woRepo.ListAssignments(day.ID)
	if err != nil {
		return fmt.Errorf("failed to list day assignments: %w", err)
	}

	origin := StandaloneOrigin{DayTaskTemplateID: link.ID}
	for _, assignment := range assignments {
		if err := s.materialize(ctx, day.ID, assignment.UserID, link.TaskTemplateID, origin); err != nil {
			return err
		}
	}

	return nil
}

// MaterializeForServiceTaskTemplate backfills instances after a new routine
// task template is added to a service: every day actively linked to the
// service gains instances for its assigned workers, honoring the template's
// day-number applicability.
func (s *MaterializerService) MaterializeForServiceTaskTemplate(ctx context.Context, row *models.ServiceTaskTemplate) error {
	links, err := s.linkRepo.ListDayServicesByService(row.ServiceID, true)
	if err != nil {
		return fmt.Errorf("failed to list day services: %w", err)
	}

	for _, link := range links {
		day := link.WorkOrderDay
		if row.DayNumber != nil && *row.DayNumber != day.DayNumber {
			continue
		}

		assignments, err := s.woRepo.ListAssignments(day.ID)
		if err != nil {
			return fmt.Errorf("failed to list day assignments: %w", err)
		}

		origin := RoutineOrigin{DayServiceID: link.ID, ServiceTaskTemplateID: row.ID}
		for _, assignment := range assignments {
			if err := s.materialize(ctx, day.ID, assignment.UserID, row.TaskTemplateID, origin); err != nil {
				return err
			}
		}
	}

	return nil
}

// materialize creates one task instance for (day, user, origin) unless one
// already exists. The instance label is snapshotted from the template name at
// creation time and never synced to later renames. A vanished template skips
// the tuple without failing the batch.
func (s *MaterializerService) materialize(ctx context.Context, dayID, userID, taskTemplateID uint64, origin TaskOrigin) error {
	var existsErr error
	switch o := origin.(type) {
	case RoutineOrigin:
		_, existsErr = s.instanceRepo.FindByRoutineOrigin(dayID, userID, o.DayServiceID, o.ServiceTaskTemplateID)
	case StandaloneOrigin:
		_, existsErr = s.instanceRepo.FindByStandaloneOrigin(dayID, userID, o.DayTaskTemplateID)
	default:
		return fmt.Errorf("unknown task origin %T", origin)
	}

	if existsErr == nil {
		// Already materialized; idempotent skip.
		return nil
	}
	if !errors.Is(existsErr, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing instance: %w", existsErr)
	}

	template, err := s.catalogRepo.FindTaskTemplateByID(taskTemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find task template: %w", err)
	}

	instance := &models.TaskInstance{
		WorkOrderDayID: dayID,
		UserID:         userID,
		InstanceLabel:  template.Name,
		Status:         models.InstanceStatusDraft,
	}
	switch o := origin.(type) {
	case RoutineOrigin:
		instance.WorkOrderDayServiceID = &o.DayServiceID
		instance.ServiceTaskTemplateID = &o.ServiceTaskTemplateID
	case StandaloneOrigin:
		instance.WorkOrderDayTaskTemplateID = &o.DayTaskTemplateID
	}

	if err := s.instanceRepo.Create(instance); err != nil {
		return fmt.Errorf("failed to create task instance: %w", err)
	}

	s.publisher.Publish(ctx, events.EventTaskInstanceCreated, instance.ID, instance)
	return nil
}
