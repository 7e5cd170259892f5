package models

import (
	"time"

	"github.com/google/uuid"
)

// Note belongs to exactly one folder. Access is governed by the folder,
// except that the creating user (OwnerID) can always edit and delete it.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FolderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"notaPasta"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null" json:"notaDono"`
	Titulo    string    `gorm:"size:255;not null" json:"titulo"`
	Conteudo  string    `gorm:"type:text" json:"conteudo"`
	CreatedAt time.Time `json:"criacaoDt"`
	UpdatedAt time.Time `json:"ultAtualizacao"`

	// Foreign key relationships
	Anexos []Attachment `gorm:"foreignKey:NoteID" json:"anexos"`
}

// Attachment describes an uploaded file referenced by a note. The list is
// replaced wholesale whenever the note is saved; Position keeps the order
// the client sent.
type Attachment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	NoteID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position   int       `gorm:"not null;default:0" json:"-"`
	Nome       string    `gorm:"size:255" json:"nome"`
	URL        string    `gorm:"size:512" json:"url"`
	Tipo       string    `gorm:"size:100" json:"tipo"`
	DataUpload time.Time `json:"dataUpload"`
}
