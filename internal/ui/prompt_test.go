package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalPrompterConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes short", "y\n", true},
		{"yes long", "yes\n", true},
		{"yes uppercase", "Y\n", true},
		{"yes padded", "  yes  \n", true},
		{"no", "n\n", false},
		{"empty answer defaults to no", "\n", false},
		{"garbage", "sure, why not\n", false},
		{"eof declines", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTerminalPrompterWithIO(strings.NewReader(tt.input), &out)

			got := p.Confirm("1.2.2", "1.3.0")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "1.3.0")
			assert.Contains(t, out.String(), "current 1.2.2")
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestStaticPrompter(t *testing.T) {
	assert.True(t, StaticPrompter{Answer: true}.Confirm("1.2.2", "1.3.0"))
	assert.False(t, StaticPrompter{Answer: false}.Confirm("1.2.2", "1.3.0"))
}
