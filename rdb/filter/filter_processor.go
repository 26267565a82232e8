package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/workshift/go-crud/rdb/query"
)

const (
	// DateLayout 日期子句的取值格式 dd/MM/yyyy
	DateLayout = "02/01/2006"

	dayLayout      = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Processor 基于 *query.Builder 追加 WHERE 条件与参数
// col 必须是已经通过元数据解析的列名。
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// ProcessText 根据文本操作符追加条件
func (poc Processor) ProcessText(builder *query.Builder, op TextOperator, col, value string) *query.Builder {
	if builder == nil {
		return nil
	}
	switch op {
	case TextDifferent:
		return poc.NotEqual(builder, col, value)
	case TextContains:
		return poc.Contains(builder, col, value)
	case TextNotContains:
		return poc.NotContains(builder, col, value)
	case TextStartWith:
		return poc.StartsWith(builder, col, value)
	case TextEndWith:
		return poc.EndsWith(builder, col, value)
	default:
		return builder
	}
}

// ProcessDate 根据日期操作符追加条件
// Empty / NotEmpty 不需要取值；其余操作要求 value 为 dd/MM/yyyy，解析失败时忽略该条件。
func (poc Processor) ProcessDate(builder *query.Builder, op DateOperator, col, value string) *query.Builder {
	if builder == nil {
		return nil
	}

	switch op {
	case DateNone:
		return builder
	case DateEmpty:
		return poc.IsNull(builder, col)
	case DateNotEmpty:
		return poc.IsNotNull(builder, col)
	}

	day, err := ParseDate(value)
	if err != nil {
		log.Debugf("skip date clause on %s: %v", col, err)
		return builder
	}

	switch op {
	case DateEqual:
		return poc.SameDay(builder, col, day)
	case DateDifferent:
		return poc.NotSameDay(builder, col, day)
	case DateLess:
		return poc.Before(builder, col, day)
	case DateLessOrEqual:
		return poc.Before(builder, col, day.AddDate(0, 0, 1))
	case DateGreater:
		return poc.OnOrAfter(builder, col, day.AddDate(0, 0, 1))
	case DateGreaterOrEqual:
		return poc.OnOrAfter(builder, col, day)
	default:
		return builder
	}
}

// Keyword 在多个列上追加 OR 连接的子串匹配
// 全为空白的关键字被忽略，其余按原样绑定（不去除首尾空白）。
func (poc Processor) Keyword(builder *query.Builder, cols []string, keyword string) *query.Builder {
	if strings.TrimSpace(keyword) == "" || len(cols) == 0 {
		return builder
	}
	return builder.WhereAny(cols, "LIKE ?", "%"+keyword+"%")
}

// NotEqual 不等于
func (poc Processor) NotEqual(builder *query.Builder, col, value string) *query.Builder {
	return builder.Where(fmt.Sprintf("%s != ?", col), value)
}

// Contains 包含
func (poc Processor) Contains(builder *query.Builder, col, value string) *query.Builder {
	return builder.Where(fmt.Sprintf("%s LIKE ?", col), "%"+value+"%")
}

// NotContains 不包含
func (poc Processor) NotContains(builder *query.Builder, col, value string) *query.Builder {
	return builder.Where(fmt.Sprintf("%s NOT LIKE ?", col), "%"+value+"%")
}

// StartsWith 开始于
func (poc Processor) StartsWith(builder *query.Builder, col, value string) *query.Builder {
	return builder.Where(fmt.Sprintf("%s LIKE ?", col), value+"%")
}

// EndsWith 结束于
func (poc Processor) EndsWith(builder *query.Builder, col, value string) *query.Builder {
	return builder.Where(fmt.Sprintf("%s LIKE ?", col), "%"+value)
}

// IsNull 为空
func (poc Processor) IsNull(builder *query.Builder, col string) *query.Builder {
	return builder.Where(fmt.Sprintf("%s IS NULL", col))
}

// IsNotNull 不为空
func (poc Processor) IsNotNull(builder *query.Builder, col string) *query.Builder {
	return builder.Where(fmt.Sprintf("%s IS NOT NULL", col))
}

// SameDay 同一天
func (poc Processor) SameDay(builder *query.Builder, col string, day time.Time) *query.Builder {
	return builder.Where(fmt.Sprintf("DATE(%s) = ?", col), day.Format(dayLayout))
}

// NotSameDay 不是同一天
func (poc Processor) NotSameDay(builder *query.Builder, col string, day time.Time) *query.Builder {
	return builder.Where(fmt.Sprintf("DATE(%s) != ?", col), day.Format(dayLayout))
}

// Before 早于某时刻
func (poc Processor) Before(builder *query.Builder, col string, t time.Time) *query.Builder {
	return builder.Where(fmt.Sprintf("%s < ?", col), t.Format(datetimeLayout))
}

// OnOrAfter 不早于某时刻
func (poc Processor) OnOrAfter(builder *query.Builder, col string, t time.Time) *query.Builder {
	return builder.Where(fmt.Sprintf("%s >= ?", col), t.Format(datetimeLayout))
}

// ParseDate 解析 dd/MM/yyyy，返回当天零点（UTC）
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	return time.ParseInLocation(DateLayout, value, time.UTC)
}
