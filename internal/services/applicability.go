package services

import (
	"fmt"

	"github.com/andestrack/field-service-api/internal/models"
)

// TaskOrigin identifies where a task instance comes from. Exactly one of the
// two variants exists; call sites switch on the concrete type.
type TaskOrigin interface {
	isOrigin()
}

// RoutineOrigin is a task reaching the day through an active day-service link.
type RoutineOrigin struct {
	DayServiceID          uint64
	ServiceTaskTemplateID uint64
}

// StandaloneOrigin is a task linked directly to the day.
type StandaloneOrigin struct {
	DayTaskTemplateID uint64
}

func (RoutineOrigin) isOrigin()    {}
func (StandaloneOrigin) isOrigin() {}

// RoutineTask describes one applicable routine task on a day.
type RoutineTask struct {
	DayServiceID          uint64 `json:"day_service_id"`
	ServiceTaskTemplateID uint64 `json:"service_task_template_id"`
	TaskTemplateID        uint64 `json:"task_template_id"`
	DisplayName           string `json:"display_name"`
	Order                 int    `json:"order"`
	IsRequired            bool   `json:"is_required"`
}

// StandaloneTask describes one applicable standalone task on a day.
type StandaloneTask struct {
	LinkID         uint64 `json:"link_id"`
	TaskTemplateID uint64 `json:"task_template_id"`
	DisplayName    string `json:"display_name"`
	Order          int    `json:"order"`
	IsRequired     bool   `json:"is_required"`
}

// ApplicableTasks is the set of tasks a worker on the given day must fill
// out. Both lists follow fetch order; display ordering is the caller's job.
type ApplicableTasks struct {
	Routine    []RoutineTask    `json:"routine_tasks"`
	Standalone []StandaloneTask `json:"standalone_tasks"`
}

// GetApplicableTasks computes the tasks applying to a day from its two
// sources: active day-service links expanded through the services' active
// task templates (filtered by day number), and active day-task links.
func (s *MaterializerService) GetApplicableTasks(day *models.WorkOrderDay) (*ApplicableTasks, error) {
	result := &ApplicableTasks{
		Routine:    []RoutineTask{},
		Standalone: []StandaloneTask{},
	}

	serviceLinks, err := s.linkRepo.ListDayServices(day.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list day services: %w", err)
	}

	for _, serviceLink := range serviceLinks {
		rows, err := s.catalogRepo.ListServiceTaskTemplates(serviceLink.ServiceID, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list service task templates: %w", err)
		}

		for _, row := range rows {
			// A template with no day number applies to every day the
			// service occupies; otherwise only to the matching day.
			if row.DayNumber != nil && *row.DayNumber != day.DayNumber {
				continue
			}
			result.Routine = append(result.Routine, RoutineTask{
				DayServiceID:          serviceLink.ID,
				ServiceTaskTemplateID: row.ID,
				TaskTemplateID:        row.TaskTemplateID,
				DisplayName:           row.TaskTemplate.Name,
				Order:                 row.Order,
				IsRequired:            row.IsRequired,
			})
		}
	}

	// Standalone links are already day-scoped; no day-number filter applies.
	taskLinks, err := s.linkRepo.ListDayTaskTemplates(day.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list day task templates: %w", err)
	}
	for _, taskLink := range taskLinks {
		result.Standalone = append(result.Standalone, StandaloneTask{
			LinkID:         taskLink.ID,
			TaskTemplateID: taskLink.TaskTemplateID,
			DisplayName:    taskLink.TaskTemplate.Name,
			Order:          taskLink.Order,
			IsRequired:     taskLink.IsRequired,
		})
	}

	return result, nil
}
