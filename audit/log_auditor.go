package audit

import (
	"context"
	"encoding/json"

	"github.com/go-kratos/kratos/v2/log"
)

// logAuditor 将审计条目以 JSON 形式写入日志
type logAuditor struct {
	log *log.Helper
}

// NewLogAuditor 创建基于 kratos 日志的 Auditor
func NewLogAuditor(logger log.Logger) Auditor {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &logAuditor{
		log: log.NewHelper(log.With(logger, "module", "audit")),
	}
}

func (a *logAuditor) Record(_ context.Context, entry *Entry) error {
	if entry == nil {
		return nil
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if entry.Status == StatusOK {
		a.log.Info(string(b))
	} else {
		a.log.Warn(string(b))
	}
	return nil
}

func (a *logAuditor) Flush(_ context.Context) error { return nil }
