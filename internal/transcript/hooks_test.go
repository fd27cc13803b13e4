package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrictHookMarker(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Shell log started.", true},
		{"  Shell log started.  ", true},
		{"Shell log started.\n", true},
		{"----- Shell log started. -----", true},
		{"- Shell log started. -", true},
		{"Shell log started. �", true},
		{"Shell log started. ~/src", true},
		{"Shell log started. ?", true},
		{"-----Shell log started.-----", false},
		{"Shell log started. foo", false},
		{"echo Shell log started.", false},
		{"Shell log started", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStrictHookMarker(tt.line), "%q", tt.line)
	}
}

func TestIsHookMarker(t *testing.T) {
	assert.True(t, IsHookMarker("echo 'Shell log started.'"))
	assert.True(t, IsHookMarker("Shell log started."))
	assert.False(t, IsHookMarker("Shell log"))
}

func TestHookIndex(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		lines := []string{"Shell log started.", "ls", "Shell log started."}
		assert.Equal(t, []int{0, 2}, HookIndex(lines))
	})

	t.Run("strict wins over generic", func(t *testing.T) {
		lines := []string{
			"Shell log started.",
			"echo Shell log started.",
			"Shell log started.",
		}
		assert.Equal(t, []int{0, 2}, HookIndex(lines))
	})

	t.Run("generic fallback", func(t *testing.T) {
		lines := []string{
			"> Shell log started. (custom)",
			"make",
			"> Shell log started. (custom)",
		}
		assert.Equal(t, []int{0, 2}, HookIndex(lines))
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, HookIndex([]string{"ls", "pwd"}))
		assert.Empty(t, HookIndex(nil))
	})
}

func TestHookIndexMonotone(t *testing.T) {
	lines := []string{
		"Shell log started.",
		"ls",
		"Shell log started.",
		"pwd",
		"Shell log started.",
	}
	before := HookIndex(lines)
	after := HookIndex(append(lines, "make", "Shell log started."))

	assert.Len(t, after, len(before)+1)
	for i := 1; i < len(after); i++ {
		assert.Less(t, after[i-1], after[i])
	}
	assert.Len(t, Segment(after, append(lines, "make", "Shell log started."), nil), len(Segment(before, lines, nil))+1)
}
