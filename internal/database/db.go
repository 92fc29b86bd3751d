package database

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
)

//go:embed schema.sql
var schema string

// Open connects to MySQL and verifies the connection.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}

	// Pool settings
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping mysql at %s:%s", cfg.Host, cfg.Port)
	}
	return db, nil
}

// Migrate creates the four booking tables when they do not exist yet.
// Statements are executed one at a time so the DSN does not need
// multiStatements.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "migrate: %.40s", stmt)
		}
	}
	return nil
}

// Statements returns the embedded schema split into individual statements.
func Statements() []string {
	var out []string
	for _, s := range strings.Split(schema, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Pinger is the part of *sql.DB the pool watcher needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// WatchPool pings the pool every interval until ctx is done.  A failed ping
// means the pool itself is unusable and the process is terminated through
// log.Fatal.
func WatchPool(ctx context.Context, db Pinger, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := db.PingContext(pctx)
			cancel()
			if err != nil && ctx.Err() == nil {
				log.Fatal("database pool unavailable", zap.Error(err))
				return
			}
		}
	}
}
