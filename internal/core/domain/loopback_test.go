package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLoopback(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{target: "http://localhost:5678/webhook", want: true},
		{target: "https://LOCALHOST/hook", want: true},
		{target: "localhost:3000/hook", want: true},
		{target: "http://api.localhost/hook", want: true},
		{target: "http://127.0.0.1:8080/hook", want: true},
		{target: "http://127.10.0.3/hook", want: true},
		{target: "http://[::1]:9000/hook", want: true},
		{target: "http://0.0.0.0:9000/hook", want: true},
		{target: "https://example.com/hook", want: false},
		{target: "https://localhost.example.com/hook", want: false},
		{target: "http://10.0.0.5/hook", want: false},
		{target: "", want: false},
		{target: "   ", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			assert.Equal(t, tc.want, IsLoopback(tc.target))
		})
	}
}
