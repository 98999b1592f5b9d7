package icons

import "github.com/nhath/ezsql/internal/db"

const (
	// Database Icons (Nerd Font)
	IconPostgres = "\ue76e"
	IconMySQL    = "\ue704"
	IconSQLite   = "\U000f01bc"
	IconGeneric  = "\U000f01bc"

	// Status Icons
	IconError = "⚠"
)

// ForDriver returns the glyph for a database engine
func ForDriver(t db.DriverType) string {
	switch t {
	case db.Postgres:
		return IconPostgres
	case db.MySQL:
		return IconMySQL
	case db.SQLite:
		return IconSQLite
	default:
		return IconGeneric
	}
}
