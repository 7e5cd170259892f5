// Package access computes a caller's effective permission for folders and
// notes by composing ownership, folder shares and the public-read
// fallback. All permission-name normalization lives here; nothing else in
// the codebase interprets raw permission strings.
package access

import "strings"

// Level is an effective permission tier for a (user, folder) pair.
// Besides the closed well-known set below, any other lowercased
// permission name passes through as an opaque custom level that grants
// read access but never note writes.
type Level string

const (
	LevelOwner  Level = "owner"
	LevelEditor Level = "editor"
	LevelAdmin  Level = "admin"
	LevelReader Level = "reader"
	LevelNone   Level = "none"
)

// Normalize maps a stored permission name to a Level. "leitor" is the
// historical Portuguese name for the reader tier and "admin" is a legacy
// editor-equivalent kept for old share rows.
func Normalize(name string) Level {
	v := strings.ToLower(strings.TrimSpace(name))
	switch v {
	case "":
		return LevelNone
	case "leitor", "reader":
		return LevelReader
	case "editor":
		return LevelEditor
	case "admin":
		return LevelAdmin
	case "owner":
		return LevelOwner
	default:
		return Level(v)
	}
}

// CanEditNotes reports whether the level permits creating and editing
// notes inside the folder. Reader and custom levels never do.
func (l Level) CanEditNotes() bool {
	return l == LevelOwner || l == LevelEditor || l == LevelAdmin
}

// CanRead reports whether a folder with the given public flag is readable
// at this level. A public folder is readable even at LevelNone.
func (l Level) CanRead(isPublic bool) bool {
	return l != LevelNone || isPublic
}

// IsOwner reports whether the level is the folder-owner tier, the only
// tier allowed to rename, delete, publish or unpublish a folder and to
// mutate its share list.
func (l Level) IsOwner() bool {
	return l == LevelOwner
}
