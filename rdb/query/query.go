package query

import (
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// Builder 用于构建参数化的 SELECT / COUNT 查询
// 标识符（表名、列名）直接拼接，且必须通过 IsValidIdentifier 校验；所有值一律走参数绑定。
type Builder struct {
	table      string
	columns    []string
	conditions []string
	orderBy    []string
	offset     *int
	limit      *int
	params     []any // 用于存储 WHERE 参数
	debug      bool  // 是否启用调试
	log        *log.Helper
}

// NewQueryBuilder 创建一个新的 Builder 实例
func NewQueryBuilder(table string, log *log.Helper) *Builder {
	return &Builder{
		log:    log,
		table:  mustIdentifier(table),
		params: []any{},
	}
}

// EnableDebug 启用调试模式
func (qb *Builder) EnableDebug() *Builder {
	qb.debug = true
	return qb
}

// logDebug 打印调试信息
func (qb *Builder) logDebug(message string, args []any) {
	if qb.debug && qb.log != nil {
		qb.log.Debugf("[Builder Debug]: %s %v", message, args)
	}
}

// TableName 返回查询的表名
func (qb *Builder) TableName() string {
	return qb.table
}

func (qb *Builder) Logger() *log.Helper {
	return qb.log
}

// Select 设置查询的列
func (qb *Builder) Select(columns ...string) *Builder {
	for _, column := range columns {
		qb.columns = append(qb.columns, mustIdentifier(column))
	}
	return qb
}

// Where 添加查询条件并支持参数化
func (qb *Builder) Where(condition string, args ...any) *Builder {
	if !isValidCondition(condition) {
		panic("Invalid condition")
	}

	qb.conditions = append(qb.conditions, condition)
	qb.params = append(qb.params, args...)
	return qb
}

// WhereAny 添加一组以 OR 连接的条件，整体作为一个 AND 子句
// 每个列生成 "<col> <predicate>"，同一参数按列重复绑定。
func (qb *Builder) WhereAny(columns []string, predicate string, arg any) *Builder {
	if len(columns) == 0 {
		return qb
	}

	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf("%s %s", mustIdentifier(column), predicate))
		args = append(args, arg)
	}

	return qb.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// OrderBy 设置排序条件
func (qb *Builder) OrderBy(column string, desc bool) *Builder {
	column = strings.TrimSpace(column)
	if column == "" {
		return qb
	}

	dir := "ASC"
	if desc {
		dir = "DESC"
	}

	qb.orderBy = append(qb.orderBy, fmt.Sprintf("%s %s", mustIdentifier(column), dir))
	return qb
}

// Limit 设置查询结果的限制数量
func (qb *Builder) Limit(limit int) *Builder {
	if limit < 0 {
		limit = 0
	}
	qb.limit = &limit
	return qb
}

// Offset 设置查询结果的偏移量，仅在设置了 Limit 时生效
func (qb *Builder) Offset(offset int) *Builder {
	if offset < 0 {
		offset = 0
	}
	qb.offset = &offset
	return qb
}

// HasConditions 是否已添加 WHERE 条件
func (qb *Builder) HasConditions() bool {
	return len(qb.conditions) > 0
}

// Build 构建最终的 SQL 查询
func (qb *Builder) Build() (string, []any) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(qb.buildColumns())
	sb.WriteString(" FROM ")
	sb.WriteString(qb.table)

	params := make([]any, 0, len(qb.params)+2)
	params = append(params, qb.params...)

	if len(qb.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(qb.conditions, " AND "))
	}

	if len(qb.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(qb.orderBy, ", "))
	}

	if qb.limit != nil {
		sb.WriteString(" LIMIT ?")
		params = append(params, *qb.limit)

		if qb.offset != nil {
			sb.WriteString(" OFFSET ?")
			params = append(params, *qb.offset)
		}
	}

	query := sb.String()
	qb.logDebug(query, params)

	return query, params
}

// BuildCount 构建与当前 WHERE 条件一致、忽略排序与分页的计数查询
func (qb *Builder) BuildCount() (string, []any) {
	query := "SELECT COUNT(1) FROM " + qb.table
	where, params := qb.BuildWhereParam()
	if where != "" {
		query += " WHERE " + where
	}

	qb.logDebug(query, params)

	return query, params
}

func (qb *Builder) buildColumns() string {
	if len(qb.columns) == 0 {
		return "*"
	}
	return strings.Join(qb.columns, ", ")
}

// BuildWhereParam 构建 WHERE 子句和参数列表
func (qb *Builder) BuildWhereParam() (string, []any) {
	params := make([]any, len(qb.params))
	copy(params, qb.params)
	return strings.Join(qb.conditions, " AND "), params
}
