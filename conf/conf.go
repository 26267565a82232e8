package conf

import (
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	_ "github.com/go-kratos/kratos/v2/encoding/yaml"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/workshift/go-crud/rdb"
)

// EnvPrefix 环境变量前缀，去掉前缀后可在配置文件中以 ${KEY:default} 引用
const EnvPrefix = "WORKSHIFT_"

type Bootstrap struct {
	Log  Log  `json:"log"`
	Data Data `json:"data"`
}

type Log struct {
	Level string `json:"level"`
}

type Data struct {
	Database Database `json:"database"`
}

type Database struct {
	Driver          string `json:"driver"`
	Source          string `json:"source"`
	MaxOpenConns    int    `json:"max_open_conns"`
	MaxIdleConns    int    `json:"max_idle_conns"`
	ConnMaxLifetime string `json:"conn_max_lifetime"`
	Migrate         bool   `json:"migrate"`
}

// Load 读取配置文件并叠加环境变量
func Load(path string) (*Bootstrap, error) {
	c := config.New(
		config.WithSource(
			file.NewSource(path),
			env.NewSource(EnvPrefix),
		),
	)
	defer func() {
		_ = c.Close()
	}()

	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	bc := &Bootstrap{}
	if err := c.Scan(bc); err != nil {
		return nil, fmt.Errorf("scan config %s: %w", path, err)
	}

	bc.applyDefaults()

	return bc, nil
}

func (bc *Bootstrap) applyDefaults() {
	if bc.Log.Level == "" {
		bc.Log.Level = log.LevelInfo.String()
	}
	if bc.Data.Database.Driver == "" {
		bc.Data.Database.Driver = rdb.DriverMySQL
	}
}

// FilterLevel 返回日志过滤级别，无法识别时为 INFO
func (l *Log) FilterLevel() log.Level {
	return log.ParseLevel(l.Level)
}

// ClientOptions 转换为 rdb.Client 的选项
func (d *Database) ClientOptions(logger log.Logger) ([]rdb.Option, error) {
	opts := []rdb.Option{
		rdb.WithDriver(d.Driver),
		rdb.WithDSN(d.Source),
	}

	if logger != nil {
		opts = append(opts, rdb.WithLogger(logger))
	}
	if d.MaxOpenConns > 0 {
		opts = append(opts, rdb.WithMaxOpenConns(d.MaxOpenConns))
	}
	if d.MaxIdleConns > 0 {
		opts = append(opts, rdb.WithMaxIdleConns(d.MaxIdleConns))
	}
	if d.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(d.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid conn_max_lifetime %q: %w", d.ConnMaxLifetime, err)
		}
		opts = append(opts, rdb.WithConnMaxLifetime(lifetime))
	}

	return opts, nil
}
