package result

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/workshift/go-crud/viewer"
)

// StatusCode 数据操作的状态码
type StatusCode int

const (
	StatusSuccess StatusCode = http.StatusOK
	StatusCreated StatusCode = http.StatusCreated
	StatusDeleted StatusCode = http.StatusNoContent
	StatusFailure StatusCode = http.StatusInternalServerError
)

const (
	// MessageFailure 通用失败提示
	MessageFailure = "Đã có lỗi xảy ra."
	// MessageNothingDeleted 没有记录被删除
	MessageNothingDeleted = "Không có bản ghi nào bị xóa."
)

// OperationResult 所有数据操作统一返回的结果封装
// 由仓库创建，返回后不再修改。
type OperationResult[T any] struct {
	StatusCode StatusCode        `json:"statusCode"`
	Data       *T                `json:"data,omitempty"`
	ListData   []*T              `json:"listData,omitempty"`
	IsSuccess  bool              `json:"isSuccess"`
	IsCreated  bool              `json:"isCreated"`
	Errors     map[string]string `json:"errors,omitempty"`
	TraceID    string            `json:"traceId,omitempty"`
	Message    string            `json:"message,omitempty"`
	TimeStamp  time.Time         `json:"timeStamp"`
	TotalItem  int64             `json:"totalItem"`
}

func newResult[T any](ctx context.Context, code StatusCode, success bool) *OperationResult[T] {
	return &OperationResult[T]{
		StatusCode: code,
		IsSuccess:  success,
		TraceID:    TraceID(ctx),
		TimeStamp:  time.Now().UTC(),
	}
}

// Success 单条记录操作成功
func Success[T any](ctx context.Context, data *T) *OperationResult[T] {
	r := newResult[T](ctx, StatusSuccess, true)
	r.Data = data
	return r
}

// Created 新增成功
func Created[T any](ctx context.Context, data *T) *OperationResult[T] {
	r := newResult[T](ctx, StatusCreated, true)
	r.Data = data
	r.IsCreated = true
	return r
}

// Deleted 删除成功
func Deleted[T any](ctx context.Context) *OperationResult[T] {
	return newResult[T](ctx, StatusDeleted, true)
}

// List 分页列表，total 为忽略分页的总行数
func List[T any](ctx context.Context, items []*T, total int64) *OperationResult[T] {
	r := newResult[T](ctx, StatusSuccess, true)
	if items == nil {
		items = []*T{}
	}
	r.ListData = items
	r.TotalItem = total
	return r
}

// Failure 操作失败（例如没有受影响的行）
func Failure[T any](ctx context.Context, message string) *OperationResult[T] {
	r := newResult[T](ctx, StatusFailure, false)
	r.Message = message
	return r
}

// WithErrors 附加字段错误信息
func (r *OperationResult[T]) WithErrors(errs map[string]string) *OperationResult[T] {
	r.Errors = errs
	return r
}

// TraceID 优先取 OpenTelemetry span 的 trace id，其次取 viewer 上下文中的 trace id
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return viewer.MustFromContext(ctx).TraceID()
}
