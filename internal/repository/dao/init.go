package dao

import "gorm.io/gorm"

func models() []any {
	return []any{
		&User{},
		&Announcement{},
		&BookForm{},
		&BookSubmission{},
		&Ticket{},
		&Achievement{},
		&Course{},
	}
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}

// DropTables removes every table owned by the application, children first.
func DropTables(db *gorm.DB) error {
	all := models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return err
		}
	}

	return nil
}
