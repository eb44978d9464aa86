package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateChapterRequest struct {
	Title  string    `json:"title" validate:"required"`
	BookId uuid.UUID `json:"book_id" validate:"required"`
}

type CreateChapterResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowChapterResponse struct {
	Id         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	Position   int             `json:"position"`
	WordCount  int             `json:"word_count"`
	BlockCount int             `json:"block_count"`
	BookId     uuid.UUID       `json:"book_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at"`
}

type UpdateChapterRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
}

type UpdateChapterResponse struct {
	Id uuid.UUID `json:"id"`
}

// AutosaveRequest carries the full editor document. Content is validated
// against the richtext schema before it touches the database.
type AutosaveRequest struct {
	Id      uuid.UUID
	Content json.RawMessage `json:"content" validate:"required"`
}

type AutosaveResponse struct {
	Id         uuid.UUID `json:"id"`
	WordCount  int       `json:"word_count"`
	BlockCount int       `json:"block_count"`
	SavedAt    time.Time `json:"saved_at"`
}

type MoveChapterRequest struct {
	Id       uuid.UUID
	Position int `json:"position" validate:"min=0"`
}

type MoveChapterResponse struct {
	Id uuid.UUID `json:"id"`
}

type ExportChapterResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Text  string    `json:"text"`
}

// PublishChapterStatsMessage is the payload queued for the stats worker
// after every autosave.
type PublishChapterStatsMessage struct {
	ChapterId uuid.UUID `json:"chapter_id"`
}

type ExportBookResponse struct {
	Id       uuid.UUID               `json:"id"`
	Title    string                  `json:"title"`
	Chapters []ExportChapterResponse `json:"chapters"`
}
