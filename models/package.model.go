package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Package is a priced offering for one registration type.
type Package struct {
	gorm.Model
	RegistrationType string                       `gorm:"type:varchar(50);not null;index" json:"registrationType"`
	Name             string                       `gorm:"type:varchar(100);not null" json:"name"`
	Price            float64                      `gorm:"not null" json:"price"`
	Timeline         string                       `gorm:"type:varchar(100)" json:"timeline"`
	Features         datatypes.JSONType[[]string] `json:"features"`
	IsRecommended    bool                         `gorm:"default:false" json:"isRecommended"`
	IsDeleted        bool                         `gorm:"default:false" json:"-"`
}

func (Package) TableName() string {
	return "packages"
}
