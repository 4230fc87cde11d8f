package models

import "time"

// WorkOrderDayService is the routine link binding a day to a service. Removal
// is a soft deactivation, never a hard delete, so historical task instances
// keep a valid reference. At most one active link may exist per (day, service).
type WorkOrderDayService struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	WorkOrderDayID uint64    `gorm:"not null;index" json:"work_order_day_id"`
	ServiceID      uint64    `gorm:"not null;index" json:"service_id"`
	Order          int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	WorkOrderDay WorkOrderDay `gorm:"foreignKey:WorkOrderDayID" json:"-"`
	Service      Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// WorkOrderDayTaskTemplate is the standalone link binding a day directly to a
// task template. Rows seeded by work-order expansion carry the originating
// ServiceTaskTemplateID. At most one link may exist per (day, taskTemplate).
type WorkOrderDayTaskTemplate struct {
	ID                    uint64    `gorm:"primarykey" json:"id"`
	WorkOrderDayID        uint64    `gorm:"not null;index" json:"work_order_day_id"`
	TaskTemplateID        uint64    `gorm:"not null;index" json:"task_template_id"`
	ServiceTaskTemplateID *uint64   `gorm:"index" json:"service_task_template_id"`
	Order                 int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsRequired            bool      `gorm:"not null;default:false" json:"is_required"`
	IsActive              bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relations
	WorkOrderDay WorkOrderDay `gorm:"foreignKey:WorkOrderDayID" json:"-"`
	TaskTemplate TaskTemplate `gorm:"foreignKey:TaskTemplateID" json:"task_template,omitempty"`
}

// WorkOrderDayTaskDependency is the per-day materialized counterpart of a
// ServiceTaskDependency: both endpoints are day-task links on the same day.
type WorkOrderDayTaskDependency struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	WorkOrderDayID uint64    `gorm:"not null;index" json:"work_order_day_id"`
	DependentID    uint64    `gorm:"not null;index" json:"dependent_id"`
	PrerequisiteID uint64    `gorm:"not null;index" json:"prerequisite_id"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Dependent    WorkOrderDayTaskTemplate `gorm:"foreignKey:DependentID" json:"dependent,omitempty"`
	Prerequisite WorkOrderDayTaskTemplate `gorm:"foreignKey:PrerequisiteID" json:"prerequisite,omitempty"`
}
