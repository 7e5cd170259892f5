package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Level
	}{
		{"empty means none", "", LevelNone},
		{"blank means none", "   ", LevelNone},
		{"leitor maps to reader", "leitor", LevelReader},
		{"leitor is case-insensitive", "LEITOR", LevelReader},
		{"reader passes through", "reader", LevelReader},
		{"editor passes through", "editor", LevelEditor},
		{"editor is case-insensitive", "Editor", LevelEditor},
		{"legacy admin passes through", "admin", LevelAdmin},
		{"owner passes through", "owner", LevelOwner},
		{"unknown name becomes custom level", "revisor", Level("revisor")},
		{"unknown name is lowercased and trimmed", "  Revisor ", Level("revisor")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestLevelCanEditNotes(t *testing.T) {
	assert.True(t, LevelOwner.CanEditNotes())
	assert.True(t, LevelEditor.CanEditNotes())
	assert.True(t, LevelAdmin.CanEditNotes())
	assert.False(t, LevelReader.CanEditNotes())
	assert.False(t, LevelNone.CanEditNotes())
	assert.False(t, Level("revisor").CanEditNotes())
}

func TestLevelCanRead(t *testing.T) {
	// Any level except none reads regardless of visibility.
	assert.True(t, LevelReader.CanRead(false))
	assert.True(t, Level("revisor").CanRead(false))

	// None reads only public folders.
	assert.False(t, LevelNone.CanRead(false))
	assert.True(t, LevelNone.CanRead(true))
}

func TestLevelIsOwner(t *testing.T) {
	assert.True(t, LevelOwner.IsOwner())
	assert.False(t, LevelEditor.IsOwner())
	assert.False(t, LevelAdmin.IsOwner())
}
