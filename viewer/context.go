package viewer

import "context"

// Context 定义当前访问者（Viewer）上下文接口
// 业务层用它填写 created_by / modified_by，仓库层用它记录审计日志。
type Context interface {
	// UserName 返回当前操作人账号名
	UserName() string

	// TraceID 返回当前请求的 Trace ID（用于日志跟踪）
	TraceID() string

	// IsSystemContext 判断是否为系统后台任务
	IsSystemContext() bool

	// ShouldAudit 返回是否需要记录审计日志
	ShouldAudit() bool
}

type contextKey struct{}

// WithContext 将 Context 注入 context
func WithContext(ctx context.Context, vc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, vc)
}

// FromContext 从 context 中提取 Context
func FromContext(ctx context.Context) (Context, bool) {
	if ctx == nil {
		return nil, false
	}
	v := ctx.Value(contextKey{})
	vc, ok := v.(Context)
	return vc, ok
}

// MustFromContext 从 context 中提取 Context，若不存在则返回一个默认的 NoopContext
func MustFromContext(ctx context.Context) Context {
	if ctx == nil {
		return NewNoopContext()
	}
	if v := ctx.Value(contextKey{}); v != nil {
		if vc, ok := v.(Context); ok && vc != nil {
			return vc
		}
	}
	return NewNoopContext()
}

// UserNameOr 返回当前操作人账号名，匿名时返回 fallback
func UserNameOr(ctx context.Context, fallback string) string {
	if name := MustFromContext(ctx).UserName(); name != "" {
		return name
	}
	return fallback
}
