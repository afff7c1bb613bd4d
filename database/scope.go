package database

import (
	"gorm.io/gorm"
)

// OwnedBy scopes a query to rows owned by the given trainer. Every read and
// write on trainer-owned entities goes through this scope. Ownership mismatch
// and nonexistence are indistinguishable to callers: both surface as
// gorm.ErrRecordNotFound.
func OwnedBy(trainerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("trainer_id = ?", trainerID)
	}
}
