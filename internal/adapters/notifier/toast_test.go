package notifier

import (
	"context"
	"fmt"
	"imghook/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToaster_Drain(t *testing.T) {
	toaster := NewToaster(0)
	ctx := testContext(t)

	toaster.Warn(ctx, "loopback")
	toaster.Error(ctx, "failed")
	toaster.Success(ctx, "done")

	toasts := toaster.Drain()
	require.Len(t, toasts, 3)

	assert.Equal(t, domain.LevelWarn, toasts[0].Level)
	assert.Equal(t, "loopback", toasts[0].Message)
	assert.Equal(t, domain.LevelError, toasts[1].Level)
	assert.Equal(t, domain.LevelSuccess, toasts[2].Level)
	assert.NotEqual(t, toasts[0].ID, toasts[1].ID)
	assert.NotEmpty(t, toasts[2].ID)

	assert.Empty(t, toaster.Drain())
	assert.NotNil(t, toaster.Drain())
}

func TestToaster_Limit(t *testing.T) {
	toaster := NewToaster(2)

	for i := 0; i < 5; i++ {
		toaster.Error(testContext(t), fmt.Sprintf("error %d", i))
	}

	toasts := toaster.Drain()
	require.Len(t, toasts, 2)
	assert.Equal(t, "error 3", toasts[0].Message)
	assert.Equal(t, "error 4", toasts[1].Message)
}

type recorder struct {
	calls []string
}

func (r *recorder) Success(_ context.Context, message string) { r.calls = append(r.calls, "success:"+message) }
func (r *recorder) Warn(_ context.Context, message string)    { r.calls = append(r.calls, "warn:"+message) }
func (r *recorder) Error(_ context.Context, message string)   { r.calls = append(r.calls, "error:"+message) }

func TestFanout(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	f := NewFanout(a, nil, b)
	require.Len(t, f, 2)

	f.Warn(testContext(t), "w")
	f.Error(testContext(t), "e")
	f.Success(testContext(t), "s")

	want := []string{"warn:w", "error:e", "success:s"}
	assert.Equal(t, want, a.calls)
	assert.Equal(t, want, b.calls)
}

func TestLog(t *testing.T) {
	l := NewLog()

	assert.NotPanics(t, func() {
		l.Success(testContext(t), "ok")
		l.Warn(testContext(t), "careful")
		l.Error(testContext(t), "failed")
	})
}
