package pagination

import (
	"github.com/workshift/go-crud/rdb/query"
)

// PagePaginator 基于页码的分页器，页码从 0 开始
// 直接在 Builder 上设置参数化的 LIMIT/OFFSET。
type PagePaginator struct {
	page int
	size int
}

func NewPagePaginator() *PagePaginator {
	return &PagePaginator{}
}

// WithPage 设置页码，负数按 0 处理
func (p *PagePaginator) WithPage(page int) *PagePaginator {
	if page < 0 {
		page = 0
	}
	p.page = page
	return p
}

// WithSize 设置每页条数，负数按 0 处理
func (p *PagePaginator) WithSize(size int) *PagePaginator {
	if size < 0 {
		size = 0
	}
	p.size = size
	return p
}

// Limit 返回每页条数
func (p *PagePaginator) Limit() int {
	return p.size
}

// Offset 返回跳过的条数
func (p *PagePaginator) Offset() int {
	return p.page * p.size
}

// BuildClause 根据传入的 page/size 设置 LIMIT/OFFSET，不修改 p 自身，可并发调用
// size <= 0 时 LIMIT 0，结果为空列表。
func (p *PagePaginator) BuildClause(builder *query.Builder, page, size int) *query.Builder {
	pp := NewPagePaginator().WithPage(page).WithSize(size)

	return builder.Limit(pp.Limit()).Offset(pp.Offset())
}
