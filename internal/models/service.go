package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a reusable bundle of task templates with default scheduling
// parameters.
type Service struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	TaskTemplates []ServiceTaskTemplate   `gorm:"foreignKey:ServiceID" json:"task_templates,omitempty"`
	Dependencies  []ServiceTaskDependency `gorm:"foreignKey:ServiceID" json:"dependencies,omitempty"`
}

// ServiceTaskTemplate binds a Service to a TaskTemplate. If DayNumber is set
// the task applies only to the work-order day with that number; when unset it
// applies to every day the service occupies.
type ServiceTaskTemplate struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	ServiceID      uint64    `gorm:"not null;index" json:"service_id"`
	TaskTemplateID uint64    `gorm:"not null;index" json:"task_template_id"`
	Order          int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsRequired     bool      `gorm:"not null;default:false" json:"is_required"`
	DayNumber      *int      `json:"day_number"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Service      Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	TaskTemplate TaskTemplate `gorm:"foreignKey:TaskTemplateID" json:"task_template,omitempty"`
}

// ServiceTaskDependency is a directed edge: the dependent service-task cannot
// start before its prerequisite. Both endpoints belong to the same Service and
// the per-service edge set must stay acyclic.
type ServiceTaskDependency struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	ServiceID      uint64    `gorm:"not null;index" json:"service_id"`
	DependentID    uint64    `gorm:"not null;index" json:"dependent_id"`
	PrerequisiteID uint64    `gorm:"not null;index" json:"prerequisite_id"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Dependent    ServiceTaskTemplate `gorm:"foreignKey:DependentID" json:"dependent,omitempty"`
	Prerequisite ServiceTaskTemplate `gorm:"foreignKey:PrerequisiteID" json:"prerequisite,omitempty"`
}
