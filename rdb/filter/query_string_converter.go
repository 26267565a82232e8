package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-kratos/kratos/v2/encoding"
	_ "github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/tx7do/go-utils/stringcase"
)

const (
	QueryDelimiter = "__" // 分隔符
)

type QueryMap map[string]any

// QueryStringConverter 将 JSON 查询字符串转换为过滤子句
//
//	{"shift_code__contains":"AM", "created_date__lte":"31/01/2026", "modified_date__isnull":true}
type QueryStringConverter struct {
	codec encoding.Codec
}

func NewQueryStringConverter() *QueryStringConverter {
	return &QueryStringConverter{
		codec: encoding.GetCodec("json"),
	}
}

// Convert 将查询字符串转换为子句列表，键按字典序处理
func (qsc *QueryStringConverter) Convert(queryJSON string) ([]*Clause, error) {
	queryJSON = strings.TrimSpace(queryJSON)
	if queryJSON == "" {
		return nil, nil
	}

	var obj QueryMap
	if err := qsc.codec.Unmarshal([]byte(queryJSON), &obj); err != nil {
		return nil, fmt.Errorf("parse query string failed: %w", err)
	}

	clauses := make([]*Clause, 0, len(obj))
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		c, err := qsc.MakeClause(k, obj[k])
		if err != nil {
			return nil, err
		}
		if c != nil {
			clauses = append(clauses, c)
		}
	}

	return clauses, nil
}

// MakeClause 由 "<列>__<操作>" 与取值构建子句
// 只有列名时等价于 contains。
func (qsc *QueryStringConverter) MakeClause(key string, value any) (*Clause, error) {
	field, op, _ := strings.Cut(strings.TrimSpace(key), QueryDelimiter)
	if field == "" {
		return nil, nil
	}

	c := &Clause{
		Column: stringcase.ToSnakeCase(field),
		Value:  AnyToString(value),
	}

	switch strings.ToLower(op) {
	case "", "contains":
		c.Text = TextContains
	case "not", "ne":
		c.Text = TextDifferent
	case "not_contains":
		c.Text = TextNotContains
	case "startswith":
		c.Text = TextStartWith
	case "endswith":
		c.Text = TextEndWith

	case "date":
		c.Date = DateEqual
	case "not_date":
		c.Date = DateDifferent
	case "lt":
		c.Date = DateLess
	case "lte":
		c.Date = DateLessOrEqual
	case "gt":
		c.Date = DateGreater
	case "gte":
		c.Date = DateGreaterOrEqual
	case "isnull":
		c.Value = ""
		if truthy(value) {
			c.Date = DateEmpty
		} else {
			c.Date = DateNotEmpty
		}

	default:
		return nil, fmt.Errorf("unsupported query operator %q in %q", op, key)
	}

	return c, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || t == "1"
	case float64:
		return t != 0
	default:
		return false
	}
}

// AnyToString 将任意值转换为字符串（nil 安全）
func AnyToString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case fmt.Stringer:
		return t.String()
	case []byte:
		return string(t)
	default:
		// 对于数字、bool 等使用 fmt.Sprintf 回退
		return fmt.Sprintf("%v", t)
	}
}
