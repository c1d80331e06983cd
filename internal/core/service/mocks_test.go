package service

import (
	"context"
	"imghook/internal/core/domain"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockWebhook struct {
	mock.Mock
}

func (m *MockWebhook) Post(ctx context.Context, url string, image domain.Image, prompt string) (string, error) {
	args := m.Called(ctx, url, image, prompt)
	return args.String(0), args.Error(1)
}

type notification struct {
	level   domain.Level
	message string
}

type mockNotifier struct {
	mu            sync.Mutex
	notifications []notification
}

func (m *mockNotifier) Success(_ context.Context, message string) {
	m.add(domain.LevelSuccess, message)
}

func (m *mockNotifier) Warn(_ context.Context, message string) {
	m.add(domain.LevelWarn, message)
}

func (m *mockNotifier) Error(_ context.Context, message string) {
	m.add(domain.LevelError, message)
}

func (m *mockNotifier) add(level domain.Level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, notification{level: level, message: message})
}

func (m *mockNotifier) all() []notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification(nil), m.notifications...)
}

func (m *mockNotifier) last() notification {
	all := m.all()
	if len(all) == 0 {
		return notification{}
	}
	return all[len(all)-1]
}

type stubPreviewer struct {
	err   error
	gates map[string]chan struct{}
}

func (s *stubPreviewer) Preview(_ context.Context, image domain.Image) (string, error) {
	if gate, ok := s.gates[image.Name]; ok {
		<-gate
	}
	if s.err != nil {
		return "", s.err
	}
	return "data:image/png;base64," + image.Name, nil
}
