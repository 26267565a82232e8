package rdb

import "errors"

var (
	// ErrClientNotInitialized 客户端或连接池尚未初始化
	ErrClientNotInitialized = errors.New("rdb client not initialized")

	// ErrConnectionFailed 打开数据库失败
	ErrConnectionFailed = errors.New("rdb connection failed")

	// ErrPingFailed 数据库不可达
	ErrPingFailed = errors.New("rdb ping failed")

	// ErrUnsupportedDriver 未注册的驱动名
	ErrUnsupportedDriver = errors.New("rdb unsupported driver")

	// ErrUnknownField 列名未在实体元数据中映射
	ErrUnknownField = errors.New("unknown field")

	// ErrNilEntity 传入的实体为空
	ErrNilEntity = errors.New("entity is nil")
)
