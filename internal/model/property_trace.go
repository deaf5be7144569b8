package model

import "time"

// PropertyTrace is an append-only audit entry. Rows are written on property
// creation, on every price change and through the manual trace endpoint, and
// are never updated or deleted afterwards.
type PropertyTrace struct {
	ID         uint      `gorm:"primaryKey;column:id"`
	PropertyID uint      `gorm:"column:property_id;index;not null"`
	DateSale   time.Time `gorm:"column:date_sale;not null"`
	Name       *string   `gorm:"column:name;size:100"`
	Value      *float64  `gorm:"column:value;type:decimal(18,2)"`
	Tax        *float64  `gorm:"column:tax;type:decimal(18,2)"`
}

func (PropertyTrace) TableName() string {
	return "property_traces"
}

// Trace names written by the property write path.
const (
	TracePropertyCreated = "Property Created"
	TracePriceChange     = "Price Change"
)
