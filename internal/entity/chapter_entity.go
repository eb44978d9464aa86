package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chapter content is the document JSON produced by pkg/richtext.
type Chapter struct {
	Id         uuid.UUID
	Title      string
	Content    []byte
	Position   int
	WordCount  int
	BlockCount int
	BookId     uuid.UUID
	UserId     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
