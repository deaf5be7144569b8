package model

type PropertyImage struct {
	ID         uint   `gorm:"primaryKey;column:id"`
	PropertyID uint   `gorm:"column:property_id;index;not null"`
	File       []byte `gorm:"column:file"`
	Enabled    bool   `gorm:"column:enabled;not null;default:true"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}
