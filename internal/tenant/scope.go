package tenant

import "gorm.io/gorm"

// Scope restricts a query to a single department, the tenant boundary of
// this system.
func Scope(deptID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("dept_id = ?", deptID)
	}
}
