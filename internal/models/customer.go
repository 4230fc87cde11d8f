package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	TaxID     string         `gorm:"type:varchar(50)" json:"tax_id"`
	Contact   string         `gorm:"type:varchar(255)" json:"contact"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Faenas     []Faena     `gorm:"foreignKey:CustomerID" json:"faenas,omitempty"`
	WorkOrders []WorkOrder `gorm:"foreignKey:CustomerID" json:"-"`
}

// Faena is a customer's work site.
type Faena struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	CustomerID uint64         `gorm:"not null;index" json:"customer_id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Location   string         `gorm:"type:varchar(255)" json:"location"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer   Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	WorkOrders []WorkOrder `gorm:"foreignKey:FaenaID" json:"-"`
}
