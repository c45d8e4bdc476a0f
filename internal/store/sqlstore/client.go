package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Options configures the relational connection pool.
type Options struct {
	Driver          string        // DriverPostgres or DriverSQLite
	DSN             string        // postgres URL/keywords, or sqlite file path (":memory:" allowed)
	MaxOpenConns    int           // 0 = driver default
	MaxIdleConns    int           // 0 = driver default
	ConnMaxLifetime time.Duration // 0 = no limit
	AutoSchema      bool          // create the bookmarks table when missing
}

// Open connects to the database, tunes the pool and verifies the connection.
// The returned Store is shared process-wide.
func Open(ctx context.Context, opts Options, log logger.Logger) (*Store, error) {
	if opts.Driver != DriverPostgres && opts.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported sql driver %q", opts.Driver)
	}

	db, err := sqlx.ConnectContext(ctx, opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Driver, err)
	}

	if opts.Driver == DriverSQLite {
		// sqlite serialises writers anyway, and every ":memory:" connection
		// would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	} else {
		configurePool(db, opts)
	}

	if opts.AutoSchema {
		if err := ensureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	log.Info("connected to database",
		logger.String("driver", opts.Driver),
		logger.Bool("auto_schema", opts.AutoSchema))

	return &Store{db: db}, nil
}

func configurePool(db *sqlx.DB, opts Options) {
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
}
