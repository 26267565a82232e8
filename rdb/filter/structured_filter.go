package filter

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/workshift/go-crud/rdb/query"
)

// StructuredFilter 将 Request 转为 WHERE 条件
type StructuredFilter struct {
	processor *Processor
}

func NewStructuredFilter() *StructuredFilter {
	return &StructuredFilter{
		processor: NewProcessor(),
	}
}

// BuildSelectors 将 Request 直接应用于 *query.Builder 的 WHERE/ARGS
// keywordColumns 为关键字匹配的列集合；未映射的列（包括子句中的列）被静默忽略。
func (sf StructuredFilter) BuildSelectors(builder *query.Builder, req *Request, resolve ColumnResolver, keywordColumns []string) (*query.Builder, error) {
	if builder == nil {
		return nil, fmt.Errorf("builder is nil")
	}
	if req == nil {
		return builder, nil
	}
	if resolve == nil {
		return builder, fmt.Errorf("column resolver is nil")
	}

	if req.Keyword != "" {
		cols := make([]string, 0, len(keywordColumns))
		for _, name := range keywordColumns {
			if col, ok := resolve(name); ok {
				cols = append(cols, col)
			}
		}
		sf.processor.Keyword(builder, cols, req.Keyword)
	}

	for _, c := range req.Clauses {
		if c == nil {
			continue
		}

		col, ok := resolve(c.Column)
		if !ok {
			log.Debugf("skip filter clause on unmapped column %q", c.Column)
			continue
		}

		// 文本与日期操作相互独立，同时存在时各自生成 AND 条件
		sf.processor.ProcessText(builder, c.Text, col, c.Value)
		sf.processor.ProcessDate(builder, c.Date, col, c.Value)
	}

	return builder, nil
}
