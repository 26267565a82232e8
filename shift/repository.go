package shift

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/workshift/go-crud/rdb"
	"github.com/workshift/go-crud/rdb/filter"
	"github.com/workshift/go-crud/result"
)

// KeywordColumns 关键字搜索匹配的列
var KeywordColumns = []string{
	"shift_code",
	"shift_name",
	"shift_working_time",
	"shift_breaking_time",
	"shift_status",
	"created_by",
	"modified_by",
}

// Repository 班次仓库
type Repository struct {
	*rdb.Repository[Shift, uuid.UUID]
}

func NewRepository(client rdb.ConnProvider, logger log.Logger) *Repository {
	return &Repository{
		Repository: rdb.NewRepository[Shift, uuid.UUID](client, logger),
	}
}

// GetPaginationFilter 关键字 + 按列过滤/排序的分页查询，pageIndex 从 0 开始
func (r *Repository) GetPaginationFilter(ctx context.Context, pageSize, pageIndex int, req *filter.Request) (*result.OperationResult[Shift], error) {
	if req == nil {
		req = &filter.Request{}
	}
	return r.ListWithFilter(ctx, pageSize, pageIndex, req, KeywordColumns...)
}
