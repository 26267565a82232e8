package audit

import "context"

type contextKey struct{}

// WithAuditor 将 Auditor 实例注入 context
func WithAuditor(ctx context.Context, a Auditor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext 从 context 中提取 Auditor
func FromContext(ctx context.Context) (Auditor, bool) {
	if ctx == nil {
		return nil, false
	}
	a, ok := ctx.Value(contextKey{}).(Auditor)
	return a, ok && a != nil
}

// MustFromContext 从 context 中提取 Auditor，若不存在则返回一个默认的空实现
func MustFromContext(ctx context.Context) Auditor {
	if a, ok := FromContext(ctx); ok {
		return a
	}
	return NewNoopAuditor()
}
