package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskTemplate is a reusable definition of field work with a configurable
// form made of FieldTemplates.
type TaskTemplate struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	FieldTemplates []FieldTemplate `gorm:"foreignKey:TaskTemplateID" json:"field_templates,omitempty"`
}

type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeNumber    FieldType = "number"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeDate      FieldType = "date"
	FieldTypeSelect    FieldType = "select"
	FieldTypeSignature FieldType = "signature"
)

// FieldTemplate is one field of a task template's form. Order is a contiguous
// 0-based sequence within the template; deletion compacts the remaining
// siblings. ValueSchema optionally holds a JSON schema the response value must
// satisfy.
type FieldTemplate struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	TaskTemplateID uint64    `gorm:"not null;index" json:"task_template_id"`
	Label          string    `gorm:"type:varchar(255);not null" json:"label"`
	FieldType      FieldType `gorm:"type:varchar(20);not null" json:"field_type"`
	Order          int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsRequired     bool      `gorm:"not null;default:false" json:"is_required"`
	ValueSchema    string    `gorm:"type:text" json:"value_schema"`
	LookupEntityID *uint64   `json:"lookup_entity_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	TaskTemplate TaskTemplate  `gorm:"foreignKey:TaskTemplateID" json:"-"`
	LookupEntity *LookupEntity `gorm:"foreignKey:LookupEntityID" json:"lookup_entity,omitempty"`
}

// LookupEntity is a named option list select fields can reference.
type LookupEntity struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Options []LookupOption `gorm:"foreignKey:LookupEntityID" json:"options,omitempty"`
}

type LookupOption struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	LookupEntityID uint64    `gorm:"not null;index" json:"lookup_entity_id"`
	Value          string    `gorm:"type:varchar(255);not null" json:"value"`
	Order          int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt      time.Time `json:"created_at"`
}
