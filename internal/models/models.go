package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Nome         string    `gorm:"size:150;not null" json:"nome"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Permission is a catalog entry for a named access tier. Names are an open
// set ("editor", "leitor", legacy "admin", ...), stored trimmed and
// lowercased so "EDITOR" and "editor" cannot coexist.
type Permission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Nome      string    `gorm:"column:permissao;size:50;not null;uniqueIndex" json:"permissao"`
	CreatedAt time.Time `json:"createdAt"`
}
