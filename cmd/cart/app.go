package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/cart-manager/internal/adapter/client"
	"github.com/rl1809/cart-manager/internal/adapter/storage"
	"github.com/rl1809/cart-manager/internal/core/service"
	"github.com/rl1809/cart-manager/internal/port"
	"github.com/rl1809/cart-manager/pkg/config"
)

// app holds the adapters opened for one command run.
type app struct {
	snapshots port.SnapshotRepository
	catalog   port.CatalogRepository
	closers   []io.Closer
}

func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{}

	snapshots, err := a.openSnapshots(ctx, cfg.Storage)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.snapshots = snapshots

	catalog, err := a.openCatalog(ctx, cfg.Catalog)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.catalog = catalog

	return a, nil
}

func (a *app) openSnapshots(ctx context.Context, sc config.StorageConfig) (port.SnapshotRepository, error) {
	if sc.Backend == config.StorageRedis {
		rdb := redis.NewClient(&redis.Options{Addr: sc.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		a.closers = append(a.closers, rdb)
		log.Debug("connected to redis", "addr", sc.RedisAddr)
		return storage.NewRedisAdapter(rdb), nil
	}

	fileAdapter, err := storage.NewFileAdapter(sc.Dir)
	if err != nil {
		return nil, err
	}
	return fileAdapter, nil
}

func (a *app) openCatalog(ctx context.Context, cc config.CatalogConfig) (port.CatalogRepository, error) {
	if cc.Backend == config.CatalogMySQL {
		mysqlAdapter, err := a.openMySQL(ctx, cc)
		if err != nil {
			return nil, err
		}
		return mysqlAdapter, nil
	}

	return client.NewCatalogClient(cc.BaseURL, &http.Client{Timeout: cc.Timeout}), nil
}

func (a *app) openMySQL(ctx context.Context, cc config.CatalogConfig) (*storage.MySQLAdapter, error) {
	db, err := sql.Open("mysql", cc.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mysql: %w", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cc.Timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}
	a.closers = append(a.closers, db)
	log.Debug("connected to mysql")

	mysqlAdapter := storage.NewMySQLAdapter(db)
	if err := mysqlAdapter.Migrate(ctx); err != nil {
		return nil, err
	}
	return mysqlAdapter, nil
}

func (a *app) newCartManager(ctx context.Context, notifier port.Notifier) (*service.CartManager, error) {
	return service.NewCartManager(ctx, a.catalog, a.snapshots, notifier,
		service.WithLogger(log),
		service.WithSnapshotKey(cfg.SnapshotKey),
	)
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
