package models

import (
	"time"

	"gorm.io/gorm"
)

type WorkOrderStatus string

const (
	WorkOrderStatusDraft      WorkOrderStatus = "draft"
	WorkOrderStatusScheduled  WorkOrderStatus = "scheduled"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrder is a scheduled engagement with a customer over an inclusive date
// range. StartDate and EndDate are UTC-midnight timestamps and StartDate must
// not be after EndDate.
type WorkOrder struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	CustomerID     uint64          `gorm:"not null;index" json:"customer_id"`
	FaenaID        uint64          `gorm:"not null;index" json:"faena_id"`
	ServiceID      *uint64         `gorm:"index" json:"service_id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Status         WorkOrderStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	StartDate      time.Time       `gorm:"not null" json:"start_date"`
	EndDate        time.Time       `gorm:"not null" json:"end_date"`
	RequiredPeople *int            `json:"required_people"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Customer Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Faena    Faena          `gorm:"foreignKey:FaenaID" json:"faena,omitempty"`
	Service  *Service       `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Days     []WorkOrderDay `gorm:"foreignKey:WorkOrderID" json:"days,omitempty"`
}

type DayStatus string

const (
	DayStatusPending    DayStatus = "pending"
	DayStatusInProgress DayStatus = "in_progress"
	DayStatusCompleted  DayStatus = "completed"
)

// WorkOrderDay is one calendar day of a work order. DayNumber is 1-based,
// contiguous and unique per work order, assigned in calendar-date order.
type WorkOrderDay struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	WorkOrderID    uint64    `gorm:"not null;index" json:"work_order_id"`
	DayDate        time.Time `gorm:"not null" json:"day_date"`
	DayNumber      int       `gorm:"not null" json:"day_number"`
	Status         DayStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RequiredPeople *int      `json:"required_people"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	WorkOrder     WorkOrder                  `gorm:"foreignKey:WorkOrderID" json:"-"`
	Services      []WorkOrderDayService      `gorm:"foreignKey:WorkOrderDayID" json:"services,omitempty"`
	TaskTemplates []WorkOrderDayTaskTemplate `gorm:"foreignKey:WorkOrderDayID" json:"task_templates,omitempty"`
	Assignments   []DayAssignment            `gorm:"foreignKey:WorkOrderDayID" json:"assignments,omitempty"`
}

// DayAssignment links a worker to a work-order day.
type DayAssignment struct {
	WorkOrderDayID uint64         `gorm:"primarykey" json:"work_order_day_id"`
	UserID         uint64         `gorm:"primarykey" json:"user_id"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	WorkOrderDay WorkOrderDay `gorm:"foreignKey:WorkOrderDayID" json:"-"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
