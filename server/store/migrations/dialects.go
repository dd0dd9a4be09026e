package migrations

import (
	"fmt"

	"github.com/ahachul/ahachul-backend/server/store"
)

func NewPostgresDialectTemplate() *DialectTemplate {
	return &DialectTemplate{
		Binary:            "BYTEA",
		IntegerPrimaryKey: "BIGSERIAL PRIMARY KEY",
		BigInt:            "BIGINT",
	}
}

func NewSqliteDialectTemplate() *DialectTemplate {
	return &DialectTemplate{
		Binary:            "BLOB",
		IntegerPrimaryKey: "integer NOT NULL PRIMARY KEY AUTOINCREMENT",
		BigInt:            "integer",
	}
}

func GetDialectForDriver(driver store.DBDriver) (*DialectTemplate, error) {
	switch driver {
	case store.Sqlite:
		return NewSqliteDialectTemplate(), nil
	case store.Postgres:
		return NewPostgresDialectTemplate(), nil
	}

	return nil, fmt.Errorf("error unsupported database driver: %s", driver)
}
