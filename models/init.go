package models

import (
	"palette/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func Init() {
	if err := Migrate(db.Instance); err != nil {
		log.Fatalf("Auto-migrate error: %v", err)
	}
}

// Migrate creates or updates the tables, parents first
func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&Member{},
		&Group{},
		&MemberGroup{},
		&Budget{},
		&Expense{},
		&PostGroup{},
		&Post{},
		&MyFile{},
		&PostLike{},
	)
}
