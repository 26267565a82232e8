package rdb

import (
	"database/sql"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

type Option func(o *Client)

func WithLogger(logger log.Logger) Option {
	return func(o *Client) {
		o.logger = log.NewHelper(log.With(logger, "module", "rdb-client"))
	}
}

// WithDriver 设置驱动名：mysql 或 sqlite
func WithDriver(driver string) Option {
	return func(o *Client) {
		o.driver = driver
	}
}

func WithDSN(dsn string) Option {
	return func(o *Client) {
		o.dsn = dsn
	}
}

// WithDB 直接使用已打开的连接池，忽略 driver/dsn
func WithDB(db *sql.DB) Option {
	return func(o *Client) {
		o.db = db
	}
}

func WithMaxOpenConns(maxOpenConns int) Option {
	return func(o *Client) {
		o.maxOpenConns = maxOpenConns
	}
}

func WithMaxIdleConns(maxIdleConns int) Option {
	return func(o *Client) {
		o.maxIdleConns = maxIdleConns
	}
}

func WithConnMaxLifetime(connMaxLifetime time.Duration) Option {
	return func(o *Client) {
		o.connMaxLifetime = connMaxLifetime
	}
}
