package sorting

import (
	"github.com/workshift/go-crud/rdb/filter"
	"github.com/workshift/go-crud/rdb/query"
)

// StructuredSorting 将过滤子句中的排序方向转换为 ORDER BY 子句
type StructuredSorting struct{}

// NewStructuredSorting 创建实例
func NewStructuredSorting() *StructuredSorting {
	return &StructuredSorting{}
}

// BuildOrderClause 按子句顺序追加排序，SortDefault 与未映射的列被忽略
func (ss StructuredSorting) BuildOrderClause(builder *query.Builder, clauses []*filter.Clause, resolve filter.ColumnResolver) *query.Builder {
	if builder == nil || len(clauses) == 0 || resolve == nil {
		return builder
	}

	for _, c := range clauses {
		if c == nil || c.Sort == filter.SortDefault {
			continue
		}

		col, ok := resolve(c.Column)
		if !ok {
			continue
		}

		builder.OrderBy(col, c.Sort == filter.SortDescending)
	}

	return builder
}

// BuildOrderClauseWithDefaultField 没有任何有效排序时使用默认排序列
func (ss StructuredSorting) BuildOrderClauseWithDefaultField(builder *query.Builder, clauses []*filter.Clause, resolve filter.ColumnResolver, defaultOrderField string, defaultDesc bool) *query.Builder {
	if builder == nil {
		return nil
	}

	for _, c := range clauses {
		if c == nil || c.Sort == filter.SortDefault {
			continue
		}
		if _, ok := resolve(c.Column); ok {
			return ss.BuildOrderClause(builder, clauses, resolve)
		}
	}

	if defaultOrderField == "" {
		return builder
	}
	return builder.OrderBy(defaultOrderField, defaultDesc)
}
