package repo

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"logiroute/ms-delivery/pkg/model"
)

// enumTypes backs the enum-typed columns on postgres. Other dialects accept
// the type names as plain text columns.
func enumTypes() map[string][]string {
	roles := make([]string, 0, len(model.Roles))
	for _, r := range model.Roles {
		roles = append(roles, string(r))
	}
	statuses := make([]string, 0, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		statuses = append(statuses, string(s))
	}
	priorities := make([]string, 0, len(model.OrderPriorities))
	for _, p := range model.OrderPriorities {
		priorities = append(priorities, string(p))
	}
	return map[string][]string{
		"user_role":      roles,
		"order_status":   statuses,
		"order_priority": priorities,
	}
}

func createEnumSQL(name string, values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, pq.QuoteLiteral(v))
	}
	return fmt.Sprintf(`DO $$ BEGIN CREATE TYPE %s AS ENUM (%s); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		pq.QuoteIdentifier(name), strings.Join(quoted, ", "))
}

// Models lists the tables owned by the SQL backed services.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.RefreshToken{},
		&model.Order{},
		&model.OrderHistory{},
	}
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		for name, values := range enumTypes() {
			if err := db.Exec(createEnumSQL(name, values)).Error; err != nil {
				return err
			}
		}
	}
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}
	return nil
}
