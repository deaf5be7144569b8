package model

import "time"

type Owner struct {
	ID       uint       `gorm:"primaryKey;column:id"`
	Name     string     `gorm:"column:name;size:100;not null"`
	Address  *string    `gorm:"column:address;size:255"`
	Photo    []byte     `gorm:"column:photo"`
	Birthday *time.Time `gorm:"column:birthday;type:date"`

	Properties []Property `gorm:"foreignKey:OwnerID"`
}

func (Owner) TableName() string {
	return "owners"
}
