package rdb

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"modernc.org/sqlite"
)

// SQLite 内置的 LIKE 只折叠 ASCII 大小写，这里以同名函数覆盖 like(pattern, value)，
// 按 Unicode 折叠大小写，与 MySQL 的 *_ci 排序规则保持一致。
// 只影响此后打开的 sqlite 连接。
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("like", 2, sqliteLike)
}

// sqliteLike 对应 "value LIKE pattern"，任一参数为 NULL 时结果为 NULL
func sqliteLike(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 || args[0] == nil || args[1] == nil {
		return nil, nil
	}
	return likeFold(sqliteText(args[0]), sqliteText(args[1])), nil
}

// sqliteText 按 SQLite 的规则把值转换为文本
func sqliteText(v driver.Value) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		s := strconv.FormatFloat(t, 'g', 15, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(t)
	}
}

// likeFold 匹配 LIKE 模式（% 任意串，_ 单个字符），不区分大小写
func likeFold(pattern, value string) bool {
	p := []rune(strings.ToLower(pattern))
	v := []rune(strings.ToLower(value))

	pi, vi := 0, 0
	star, mark := -1, 0
	for vi < len(v) {
		switch {
		case pi < len(p) && p[pi] == '%':
			star, mark = pi, vi
			pi++
		case pi < len(p) && (p[pi] == '_' || p[pi] == v[vi]):
			pi++
			vi++
		case star >= 0:
			pi = star + 1
			mark++
			vi = mark
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '%' {
		pi++
	}
	return pi == len(p)
}
