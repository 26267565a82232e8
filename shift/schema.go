package shift

import (
	"fmt"

	"github.com/workshift/go-crud/rdb"
)

const mysqlSchema = `CREATE TABLE IF NOT EXISTS shift (
	shift_id               CHAR(36)     NOT NULL PRIMARY KEY,
	shift_code             VARCHAR(20)  NOT NULL,
	shift_name             VARCHAR(255) NOT NULL,
	shift_description      VARCHAR(1000) NOT NULL DEFAULT '',
	shift_begin_time       TIME         NULL,
	shift_end_time         TIME         NULL,
	shift_begin_break_time TIME         NULL,
	shift_end_break_time   TIME         NULL,
	shift_working_time     FLOAT        NOT NULL DEFAULT 0,
	shift_breaking_time    FLOAT        NOT NULL DEFAULT 0,
	shift_status           INT          NOT NULL DEFAULT 1,
	created_by             VARCHAR(100) NOT NULL,
	created_date           DATETIME     NOT NULL,
	modified_by            VARCHAR(100) NULL,
	modified_date          DATETIME     NULL
)`

const sqliteSchema = `CREATE TABLE IF NOT EXISTS shift (
	shift_id               TEXT     NOT NULL PRIMARY KEY,
	shift_code             TEXT     NOT NULL,
	shift_name             TEXT     NOT NULL,
	shift_description      TEXT     NOT NULL DEFAULT '',
	shift_begin_time       TEXT     NULL,
	shift_end_time         TEXT     NULL,
	shift_begin_break_time TEXT     NULL,
	shift_end_break_time   TEXT     NULL,
	shift_working_time     REAL     NOT NULL DEFAULT 0,
	shift_breaking_time    REAL     NOT NULL DEFAULT 0,
	shift_status           INTEGER  NOT NULL DEFAULT 1,
	created_by             TEXT     NOT NULL,
	created_date           DATETIME NOT NULL,
	modified_by            TEXT     NULL,
	modified_date          DATETIME NULL
)`

// Schema 返回指定驱动的建表语句
func Schema(driver string) (string, error) {
	switch driver {
	case rdb.DriverMySQL:
		return mysqlSchema, nil
	case rdb.DriverSQLite:
		return sqliteSchema, nil
	default:
		return "", fmt.Errorf("%w: %q", rdb.ErrUnsupportedDriver, driver)
	}
}
