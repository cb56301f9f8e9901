package repos

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row lock on engines that support it. SQLite runs with a
// single writer, so transactions already serialize there.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
