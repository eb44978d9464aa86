package specification

import "gorm.io/gorm"

type OrderByPosition struct{}

func (s OrderByPosition) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

type FromPosition struct {
	Position int
}

func (s FromPosition) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("position >= ?", s.Position)
}
