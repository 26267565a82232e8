package viewer

// userContext 已登录操作人
type userContext struct {
	name    string
	traceID string
	system  bool
}

func (u userContext) UserName() string      { return u.name }
func (u userContext) TraceID() string       { return u.traceID }
func (u userContext) IsSystemContext() bool { return u.system }
func (u userContext) ShouldAudit() bool     { return true }

// NewUser 创建操作人上下文
func NewUser(name, traceID string) Context {
	return userContext{name: name, traceID: traceID}
}

// NewSystem 创建系统后台任务上下文
func NewSystem(name string) Context {
	return userContext{name: name, system: true}
}
