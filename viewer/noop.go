package viewer

// noopContext 实现 Context 接口，用于表示匿名或未授权用户
type noopContext struct{}

func (noopContext) UserName() string      { return "" }
func (noopContext) TraceID() string       { return "" }
func (noopContext) IsSystemContext() bool { return false }
func (noopContext) ShouldAudit() bool     { return false }

// NewNoopContext 创建一个匿名上下文实例
func NewNoopContext() Context {
	return noopContext{}
}
