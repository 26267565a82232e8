package audit

import (
	"encoding/json"
	"time"
)

type Operation string

const (
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

type Status int

const (
	StatusOK   Status = 0
	StatusFail Status = 1
)

// Entry 审计日志条目
type Entry struct {
	// --- 基础上下文 (Base Context) ---
	TraceID   string    `json:"trace_id"`  // 全链路追踪 ID
	Timestamp time.Time `json:"timestamp"` // 发生时间（UTC）

	// --- 操作者信息 (Viewer Data) ---
	Username string `json:"username,omitempty"` // 操作人账号名

	// --- 操作行为 (Action) ---
	Module   string `json:"module,omitempty"`   // 业务模块
	Action   string `json:"action,omitempty"`   // 具体动作（如：Save, Update, DeleteByIds）
	Resource string `json:"resource,omitempty"` // 操作的表

	// --- 数据变更 (Data Changes) ---
	Operation Operation       `json:"operation,omitempty"`  // 对应数据库操作：INSERT, UPDATE, DELETE
	TargetIDs []string        `json:"target_ids,omitempty"` // 被操作对象的 ID
	Affected  int64           `json:"affected"`             // 受影响行数
	PostValue json.RawMessage `json:"post_value,omitempty"` // 变更后的值

	// --- 结果状态 (Result) ---
	Status       Status `json:"status"`                  // 状态码：0-成功，1-失败
	ErrorMessage string `json:"error_message,omitempty"` // 失败原因（如果 Status != 0）
	CostMS       int64  `json:"cost_ms,omitempty"`       // 操作耗时（毫秒）
}

func (e *Entry) SetPostValue(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e.PostValue = b
	return nil
}
