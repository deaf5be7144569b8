package model

// Property is the aggregate root of the catalog. Enabled is the soft-delete
// marker: disabled rows stay in place with their images and traces attached.
type Property struct {
	ID           uint     `gorm:"primaryKey;column:id"`
	Name         string   `gorm:"column:name;size:100;not null"`
	Address      string   `gorm:"column:address;size:255;not null"`
	Price        *float64 `gorm:"column:price;type:decimal(18,2)"`
	CodeInternal *string  `gorm:"column:code_internal;size:50"`
	Year         *int     `gorm:"column:year"`
	OwnerID      uint     `gorm:"column:owner_id;index;not null"`
	Enabled      bool     `gorm:"column:enabled;not null;default:true"`

	Owner  Owner           `gorm:"foreignKey:OwnerID"`
	Images []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Traces []PropertyTrace `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

func (Property) TableName() string {
	return "properties"
}

// PriceOrZero is the value recorded in creation traces for unpriced rows.
func (p *Property) PriceOrZero() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}
