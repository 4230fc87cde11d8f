package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type InstanceStatus string

const (
	InstanceStatusDraft     InstanceStatus = "draft"
	InstanceStatusCompleted InstanceStatus = "completed"
)

var ErrAmbiguousOrigin = errors.New("task instance must have exactly one origin: routine (day service + service task template) or standalone (day task template)")

// TaskInstance is one worker's concrete occurrence of a task on a specific
// day. Exactly one origin is populated: routine instances reference the
// day-service link plus the service task template, standalone instances
// reference the day-task link. At most one instance exists per
// (day, user, origin); the materializer upholds that by querying before
// inserting. InstanceLabel is snapshotted from the template name at creation
// and is not synced to later renames.
type TaskInstance struct {
	ID                         uint64         `gorm:"primarykey" json:"id"`
	WorkOrderDayID             uint64         `gorm:"not null;index:idx_task_instances_day_user" json:"work_order_day_id"`
	UserID                     uint64         `gorm:"not null;index:idx_task_instances_day_user" json:"user_id"`
	WorkOrderDayServiceID      *uint64        `gorm:"index" json:"work_order_day_service_id"`
	ServiceTaskTemplateID      *uint64        `gorm:"index" json:"service_task_template_id"`
	WorkOrderDayTaskTemplateID *uint64        `gorm:"index" json:"work_order_day_task_template_id"`
	InstanceLabel              string         `gorm:"type:varchar(255);not null" json:"instance_label"`
	Status                     InstanceStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	StartedAt                  *time.Time     `json:"started_at"`
	CompletedAt                *time.Time     `json:"completed_at"`
	CreatedAt                  time.Time      `json:"created_at"`
	UpdatedAt                  time.Time      `json:"updated_at"`

	// Relations
	WorkOrderDay WorkOrderDay    `gorm:"foreignKey:WorkOrderDayID" json:"-"`
	User         User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Responses    []FieldResponse `gorm:"foreignKey:TaskInstanceID" json:"responses,omitempty"`
}

// BeforeSave rejects rows that do not populate exactly one origin.
func (t *TaskInstance) BeforeSave(tx *gorm.DB) error {
	routine := t.WorkOrderDayServiceID != nil && t.ServiceTaskTemplateID != nil
	standalone := t.WorkOrderDayTaskTemplateID != nil

	if routine == standalone {
		return ErrAmbiguousOrigin
	}
	if !routine && (t.WorkOrderDayServiceID != nil || t.ServiceTaskTemplateID != nil) {
		return ErrAmbiguousOrigin
	}
	return nil
}

// FieldResponse is a worker's answer to one field of an instance's template.
type FieldResponse struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	TaskInstanceID  uint64    `gorm:"not null;uniqueIndex:idx_field_responses_instance_field" json:"task_instance_id"`
	FieldTemplateID uint64    `gorm:"not null;uniqueIndex:idx_field_responses_instance_field" json:"field_template_id"`
	Value           string    `gorm:"type:text" json:"value"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	TaskInstance  TaskInstance  `gorm:"foreignKey:TaskInstanceID" json:"-"`
	FieldTemplate FieldTemplate `gorm:"foreignKey:FieldTemplateID" json:"field_template,omitempty"`
}
