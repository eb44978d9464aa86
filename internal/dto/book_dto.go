package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type CreateBookResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateBookRequest struct {
	Id          uuid.UUID
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type UpdateBookResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChapterSummary struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Position   int       `json:"position"`
	WordCount  int       `json:"word_count"`
	BlockCount int       `json:"block_count"`
}

type ShowBookResponse struct {
	Id          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Chapters    []ChapterSummary `json:"chapters"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
}

type ListBooksResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
