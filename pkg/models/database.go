package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// All returns one value of every model stored in the database, in an order
// that satisfies foreign keys.
func All() []any {
	return []any{
		&Workspace{},
		&WorkspaceMember{},
		&Wallet{},
		&Category{},
		&CreditCard{},
		&Budget{},
		&Transaction{},
		&Notification{},
		&SubscriptionPlan{},
		&Subscription{},
	}
}

// Connect opens the SQLite database, migrates it and registers the
// callbacks translating database errors.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: NewLogger(log.Logger),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite allows a single writer. One connection avoids SQLITE_BUSY.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	callbacks := []struct {
		register func(string, func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{db.Callback().Query().After("*").Register, "walletwise:after_query", queryCallback},
		{db.Callback().Query().After("*").Register, "walletwise:after_query_general", generalCallback},
		{db.Callback().Create().After("*").Register, "walletwise:after_create", createUpdateCallback},
		{db.Callback().Create().After("*").Register, "walletwise:after_create_general", generalCallback},
		{db.Callback().Update().After("*").Register, "walletwise:after_update", createUpdateCallback},
		{db.Callback().Update().After("*").Register, "walletwise:after_update_general", generalCallback},
		{db.Callback().Delete().After("*").Register, "walletwise:after_delete", deleteCallback},
		{db.Callback().Delete().After("*").Register, "walletwise:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		err = c.register(c.name, c.fn)
		if err != nil {
			return nil, fmt.Errorf("failed to register callback %s: %w", c.name, err)
		}
	}

	return db, nil
}

// Migrate migrates all models to the schema defined in the code.
func Migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(All()...)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

var plural = regexp.MustCompile("ies$")

// resourceName turns a table name into the name of a single resource,
// e.g. "credit_cards" into "credit card".
func resourceName(table string) string {
	name := strings.ReplaceAll(table, "_", " ")
	name = plural.ReplaceAllString(name, "y")
	return strings.TrimSuffix(name, "s")
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, resourceName(db.Statement.Table))
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: categories.user_id, categories.name, categories.type"):
		db.Error = ErrCategoryNameNotUnique
	case strings.Contains(msg, "UNIQUE constraint failed: workspace_members.workspace_id, workspace_members.user_id"):
		db.Error = ErrMemberNotUnique
	case strings.Contains(msg, "CHECK constraint failed: wallets_different"):
		db.Error = ErrWalletsNotDifferent
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		db.Error = ErrReferenceMissing
	}
}

// deleteCallback translates foreign key violations on delete.
func deleteCallback(db *gorm.DB) {
	if db.Error != nil && strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed") {
		db.Error = ErrStillReferenced
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in database/sql
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}
