package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lovely beaches", "Lovely beaches"},
		{"<b>Great</b> trip", "Great trip"},
		{"Hi<script>alert('x')</script>", "Hi"},
		{"it's fine & cheap", "it's fine & cheap"},
		{"a < b", "a < b"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;ok", "ok"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, plainText(tt.in))
		})
	}
}
