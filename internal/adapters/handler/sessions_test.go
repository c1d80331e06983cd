package handler

import (
	"context"
	"imghook/internal/adapters/notifier"
	"imghook/internal/adapters/preview"
	"imghook/internal/core/domain"
	"imghook/internal/core/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingWebhook struct {
	release chan struct{}
}

func (b *blockingWebhook) Post(_ context.Context, _ string, _ domain.Image, _ string) (string, error) {
	<-b.release
	return "https://cdn.example.com/out.png", nil
}

func newTestSessions(hook *blockingWebhook, ttl time.Duration) (*Sessions, *time.Time) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	sessions := NewSessions(func(id string) *Session {
		toasts := notifier.NewToaster(0)
		return &Session{
			ID:         id,
			Controller: service.NewController(service.NewForm(preview.NewDataURL()), hook, toasts, 0),
			Toasts:     toasts,
		}
	}, ttl)
	sessions.now = func() time.Time { return now }

	return sessions, &now
}

func TestSessionsCreateGetDelete(t *testing.T) {
	sessions, _ := newTestSessions(&blockingWebhook{}, time.Minute)

	session, err := sessions.Create()
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	got, ok := sessions.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = sessions.Get("unknown")
	assert.False(t, ok)

	sessions.Delete(session.ID)
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionsSweep(t *testing.T) {
	sessions, now := newTestSessions(&blockingWebhook{}, time.Minute)

	stale, err := sessions.Create()
	require.NoError(t, err)
	active, err := sessions.Create()
	require.NoError(t, err)

	*now = now.Add(50 * time.Second)
	_, ok := sessions.Get(active.ID)
	require.True(t, ok)

	*now = now.Add(20 * time.Second)
	assert.Equal(t, 1, sessions.Sweep())

	_, ok = sessions.Get(stale.ID)
	assert.False(t, ok)
	_, ok = sessions.Get(active.ID)
	assert.True(t, ok)
}

func TestSessionsSweepKeepsLoading(t *testing.T) {
	hook := &blockingWebhook{release: make(chan struct{})}
	sessions, now := newTestSessions(hook, time.Minute)

	session, err := sessions.Create()
	require.NoError(t, err)

	form := session.Controller.Form()
	<-form.SetImage(testContext(t), domain.Image{Name: "input.png", ContentType: "image/png", Data: pngImage})
	form.SetPrompt("enhance")
	form.SetWebhookURL("https://example.com/hook")

	done := make(chan error, 1)
	go func() {
		done <- session.Controller.Submit(testContext(t))
	}()

	require.Eventually(t, func() bool {
		return form.Snapshot().Result.IsLoading()
	}, 2*time.Second, 10*time.Millisecond)

	*now = now.Add(time.Hour)
	assert.Equal(t, 0, sessions.Sweep())
	assert.Equal(t, 1, sessions.Len())

	close(hook.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, sessions.Sweep())
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionsSchedule(t *testing.T) {
	sessions, _ := newTestSessions(&blockingWebhook{}, time.Minute)

	_, err := sessions.Schedule("not a schedule")
	assert.Error(t, err)

	c, err := sessions.Schedule("@every 1m")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
