//go:build testutil
// +build testutil

// Package testdb starts a throwaway MySQL container and applies the
// embedded migrations, giving integration tests a real database with the
// production schema and constraints.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/coachup/coaching-api/internal/database"
)

type DBHandle struct {
	DB     *sql.DB
	cancel func()
	stop   func(context.Context) error
}

func (h *DBHandle) Close() {
	if h.DB != nil {
		_ = h.DB.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

func Start(ctx context.Context) (*DBHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	my, err := mysql.RunContainer(ctx,
		tc.WithImage("mysql:8.0"),
		mysql.WithDatabase("coaching"),
		mysql.WithUsername("coaching"),
		mysql.WithPassword("coaching"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	uri, err := my.ConnectionString(ctx, "parseTime=true", "loc=UTC", "charset=utf8mb4")
	if err != nil {
		_ = my.Terminate(ctx)
		cancel()
		return nil, err
	}

	db, err := sql.Open("mysql", uri)
	if err != nil {
		_ = my.Terminate(ctx)
		cancel()
		return nil, err
	}
	if err := waitReady(ctx, db); err != nil {
		_ = my.Terminate(ctx)
		cancel()
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		_ = my.Terminate(ctx)
		cancel()
		return nil, err
	}

	return &DBHandle{
		DB:     db,
		cancel: cancel,
		stop:   my.Terminate,
	}, nil
}

func waitReady(ctx context.Context, db *sql.DB) error {
	dead := time.Now().Add(60 * time.Second)
	for time.Now().Before(dead) {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("db not ready")
}
