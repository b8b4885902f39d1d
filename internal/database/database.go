package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/isdelr/birthdaybot-be/internal/config"
)

// Dialect holds the SQL that differs between database/sql backends.
type Dialect struct {
	Name        string
	CreateTable string
	Upsert      string
}

var (
	// SQLite stores dates as ISO-8601 text.
	SQLite = Dialect{
		Name: config.DriverSQLite,
		CreateTable: `
	CREATE TABLE IF NOT EXISTS birthdays (
		username TEXT NOT NULL PRIMARY KEY,
		birthday TEXT NOT NULL
	);`,
		Upsert: `
		INSERT INTO birthdays (username, birthday) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET birthday = excluded.birthday`,
	}

	MySQL = Dialect{
		Name: config.DriverMySQL,
		CreateTable: `
	CREATE TABLE IF NOT EXISTS birthdays (
		username VARCHAR(255) NOT NULL,
		birthday DATE NOT NULL,
		PRIMARY KEY (username)
	);`,
		Upsert: `
		INSERT INTO birthdays (username, birthday) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE birthday = VALUES(birthday)`,
	}
)

// New creates a new database connection pool for the configured driver and
// verifies it can reach the server.
func New(ctx context.Context, cfg config.Database) (*sql.DB, Dialect, error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		dialect = SQLite
		// WAL and a busy timeout keep concurrent writers from failing with "database is locked"
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path)
		db, err = sql.Open("sqlite", dsn)
	case config.DriverMySQL:
		dialect = MySQL
		db, err = sql.Open("mysql", mysqlDSN(cfg))
	default:
		return nil, Dialect{}, fmt.Errorf("driver %q is not served by database/sql", cfg.Driver)
	}
	if err != nil {
		return nil, Dialect{}, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns())
	db.SetMaxIdleConns(cfg.PoolSize)
	db.SetConnMaxLifetime(cfg.PoolRecycle)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PoolTimeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, err
	}
	return db, dialect, nil
}

func mysqlDSN(cfg config.Database) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.Timeout = cfg.PoolTimeout
	return mc.FormatDSN()
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	_, err := db.ExecContext(ctx, dialect.CreateTable)
	return err
}
