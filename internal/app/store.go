package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/bookmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/bookmarks/internal/config"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/redis"
	"github.com/MrSnakeDoc/bookmarks/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/bookmarks/internal/store/redis"
	"github.com/MrSnakeDoc/bookmarks/internal/store/sqlstore"
)

// openStore builds the Storage Adapter selected by cfg.Store. It fails fast
// when the backend is unreachable.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (bookmarks.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		log.Info("opening postgres bookmark store")
		return sqlstore.Open(ctx, sqlOptions(cfg, sqlstore.DriverPostgres, cfg.DatabaseURL), log)

	case config.StoreSQLite:
		log.Info("opening sqlite bookmark store", logger.String("path", cfg.SQLitePath))
		return sqlstore.Open(ctx, sqlOptions(cfg, sqlstore.DriverSQLite, cfg.SQLitePath), log)

	case config.StoreRedis:
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client), nil

	case config.StoreMemory:
		log.Warn("using in-memory bookmark store, data is lost on restart")
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func sqlOptions(cfg *config.Config, driver, dsn string) sqlstore.Options {
	return sqlstore.Options{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		AutoSchema:      cfg.DBAutoSchema,
	}
}
