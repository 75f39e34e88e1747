package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"

	_ "github.com/newrelic/go-agent/v3/integrations/nrpgx"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 3 * time.Minute

	pingTimeout = 5 * time.Second
)

// setupPostgres opens the write and read pools. Without a read host the read pool is
// the write pool.
func setupPostgres(ctx context.Context, conf config.Postgres) (writeDB, readDB *sql.DB, closer func(context.Context) error, err error) {
	writeDB, err = openDB(ctx, conf.Write)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("write database: %w", err)
	}

	readDB = writeDB
	if conf.Read.Host != "" {
		readDB, err = openDB(ctx, conf.Read)
		if err != nil {
			_ = writeDB.Close()
			return nil, nil, nil, fmt.Errorf("read database: %w", err)
		}
	}

	closer = func(context.Context) error {
		err := writeDB.Close()
		if readDB != writeDB {
			err = errors.Join(err, readDB.Close())
		}
		return err
	}

	return writeDB, readDB, closer, nil
}

func dataSourceName(db config.Database) string {
	q := url.Values{}
	q.Set("sslmode", "disable")
	if db.Schema != "" {
		q.Set("search_path", db.Schema)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     db.Host + ":" + db.Port,
		Path:     "/" + db.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func openDB(ctx context.Context, conf config.Database) (*sql.DB, error) {
	db, err := sql.Open("nrpgx", dataSourceName(conf))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(positiveOr(conf.MaxOpenConns, defaultMaxOpenConns))
	db.SetMaxIdleConns(positiveOr(conf.MaxIdleConns, defaultMaxIdleConns))
	lifetime := defaultConnMaxLifetime
	if conf.ConnMaxLifetimeMinutes > 0 {
		lifetime = time.Duration(conf.ConnMaxLifetimeMinutes) * time.Minute
	}
	db.SetConnMaxLifetime(lifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s@%s: %w", conf.Name, conf.Host, err)
	}

	return db, nil
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
