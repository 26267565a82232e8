package rdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// ConnProvider 为每次仓库调用提供一个独占连接，调用方负责 Close
type ConnProvider interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// Client 关系型数据库客户端，封装 *sql.DB 连接池
type Client struct {
	db *sql.DB

	driver string
	dsn    string

	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration

	logger *log.Helper
}

func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		driver: DriverMySQL,
	}

	for _, o := range opts {
		o(c)
	}

	if c.logger == nil {
		c.logger = log.NewHelper(log.With(log.DefaultLogger, "module", "rdb-client"))
	}

	if c.db == nil {
		if err := c.createSqlClient(); err != nil {
			return nil, err
		}
	}

	c.configurePool()

	return c, nil
}

// createSqlClient 按驱动规范化 DSN 并打开连接池
func (c *Client) createSqlClient() error {
	dsn, err := normalizeDSN(c.driver, c.dsn)
	if err != nil {
		c.logger.Errorf("invalid %s dsn: %v", c.driver, err)
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	db, err := sql.Open(c.driver, dsn)
	if err != nil {
		c.logger.Errorf("failed to open %s database: %v", c.driver, err)
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	c.db = db

	return nil
}

func (c *Client) configurePool() {
	if c.maxOpenConns > 0 {
		c.db.SetMaxOpenConns(c.maxOpenConns)
	}
	if c.maxIdleConns > 0 {
		c.db.SetMaxIdleConns(c.maxIdleConns)
	}
	if c.connMaxLifetime > 0 {
		c.db.SetConnMaxLifetime(c.connMaxLifetime)
	}
}

// normalizeDSN MySQL 需要 parseTime 才能把 DATETIME 扫描为 time.Time，
// clientFoundRows 使 UPDATE 返回匹配行数而非实际变更行数；
// SQLite 以 SQLite 自身格式写入 time.Time，使 DATE()/范围比较可用。
func normalizeDSN(driver, dsn string) (string, error) {
	switch driver {
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", err
		}
		cfg.ParseTime = true
		cfg.ClientFoundRows = true
		return cfg.FormatDSN(), nil

	case DriverSQLite:
		if dsn == "" {
			return "", fmt.Errorf("empty sqlite dsn")
		}
		if strings.Contains(dsn, "_time_format=") {
			return dsn, nil
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "_time_format=sqlite", nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// DB 返回底层连接池
func (c *Client) DB() *sql.DB {
	return c.db
}

// DriverName 返回驱动名
func (c *Client) DriverName() string {
	return c.driver
}

// Conn 从连接池取出一个独占连接
func (c *Client) Conn(ctx context.Context) (*sql.Conn, error) {
	if c == nil || c.db == nil {
		return nil, ErrClientNotInitialized
	}
	return c.db.Conn(ctx)
}

// Close 关闭连接池
func (c *Client) Close() {
	if c.db == nil {
		c.logger.Warn("rdb client is already closed or not initialized")
		return
	}

	if err := c.db.Close(); err != nil {
		c.logger.Errorf("failed to close rdb client: %v", err)
	} else {
		c.logger.Info("rdb client closed successfully")
	}
}

// CheckConnection 检查数据库连接是否正常
func (c *Client) CheckConnection(ctx context.Context) error {
	if c.db == nil {
		c.logger.Error("rdb client is not initialized")
		return ErrClientNotInitialized
	}

	if err := c.db.PingContext(ctx); err != nil {
		c.logger.Errorf("ping failed: %v", err)
		return fmt.Errorf("%w: %v", ErrPingFailed, err)
	}

	c.logger.Info("rdb client connection is healthy")
	return nil
}
