package dbpkg

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source
)

// Direction selects which way migrations run.
type Direction string

// Migration directions.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ErrUnknownDirection is returned for a direction other than Up or Down.
var ErrUnknownDirection = errors.New("unknown migration direction")

// Migrate applies every migration found at sourceURL to db in the given direction.
//
// Having nothing to apply is not an error.
func Migrate(db *sql.DB, sourceURL string, dir Direction) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return err
	}

	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return ErrUnknownDirection
	}

	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}
