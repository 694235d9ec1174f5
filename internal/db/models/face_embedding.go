package models

import (
	"gorm.io/gorm"
)

// FaceEmbedding is a single stored reference descriptor for a person.
// The hash column carries a unique index so the same descriptor is never
// persisted twice, no matter which person it would belong to.
type FaceEmbedding struct {
	gorm.Model
	PersonID   uint   `json:"person_id" gorm:"not null;index"`
	Vector     Vector `json:"vector" gorm:"type:jsonb;not null"`
	VectorHash int64  `json:"vector_hash" gorm:"not null;uniqueIndex"`
}

// BeforeCreate fills the hash from the vector when the caller did not set it
func (e *FaceEmbedding) BeforeCreate(_ *gorm.DB) error {
	if err := e.Vector.Validate(); err != nil {
		return err
	}
	if e.VectorHash == 0 {
		e.VectorHash = e.Vector.Hash()
	}
	return nil
}
