package viewer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewerContext(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)

	// 匿名上下文
	vc := MustFromContext(ctx)
	assert.Equal(t, "", vc.UserName())
	assert.False(t, vc.ShouldAudit())
	assert.Equal(t, "ADMIN", UserNameOr(ctx, "ADMIN"))

	ctx = WithContext(ctx, NewUser("hanv", "trace-1"))
	vc, ok = FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "hanv", vc.UserName())
	assert.Equal(t, "trace-1", vc.TraceID())
	assert.True(t, vc.ShouldAudit())
	assert.False(t, vc.IsSystemContext())
	assert.Equal(t, "hanv", UserNameOr(ctx, "ADMIN"))

	sys := NewSystem("scheduler")
	assert.True(t, sys.IsSystemContext())
	assert.Equal(t, "scheduler", sys.UserName())
}
