package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/iWorld-y/news_locator/internal/conf"
)

const analysesDDL = `
	CREATE TABLE IF NOT EXISTS analyses (
		id UUID PRIMARY KEY,
		url TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		validity TEXT NOT NULL DEFAULT '',
		trust_score INTEGER NOT NULL DEFAULT 0,
		hoax_analysis TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// Data 持有数据库和 redis 连接，二者都可以为空
type Data struct {
	db  *sql.DB
	rdb *redis.Client
}

// NewData 打开已配置的存储，未配置的部分保持关闭
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	d := &Data{}

	if c != nil && c.Database != nil && c.Database.Source != "" {
		driver := c.Database.Driver
		if driver == "" {
			driver = "postgres"
		}
		db, err := sql.Open(driver, c.Database.Source)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		d.db = db
	} else {
		helper.Warn("database not configured, analysis archive disabled")
	}

	if c != nil && c.Redis != nil && c.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       int(c.Redis.Db),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			if d.db != nil {
				d.db.Close()
			}
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		d.rdb = rdb
	} else {
		helper.Info("redis not configured, using in-memory highlight cache")
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		if d.db != nil {
			d.db.Close()
		}
		if d.rdb != nil {
			d.rdb.Close()
		}
	}
	return d, cleanup, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(analysesDDL); err != nil {
		return fmt.Errorf("failed to init analyses table: %w", err)
	}
	return nil
}
