package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, "abc", Clamp("abc", 5))
	assert.Equal(t, "abc", Clamp("abcdef", 3))
	// rune-safe for Devanagari
	assert.Equal(t, "नमस्", Clamp("नमस्ते", 4))
}

func TestClampList(t *testing.T) {
	got := ClampList([]string{"aaaa", "bb", "cc", "dd"}, 3, 3)
	assert.Equal(t, []string{"aaa", "bb", "cc"}, got)
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Hindi", LanguageName("hi"))
	assert.Equal(t, "Marathi", LanguageName("mr"))
	assert.Equal(t, "English", LanguageName("xx"))
	assert.Equal(t, "English", LanguageName(""))
}
