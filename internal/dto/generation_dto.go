package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DraftChapterRequest asks the LLM to draft or extend a chapter. The
// current document is projected to plain text for the prompt and the
// model output is parsed back into the document schema.
type DraftChapterRequest struct {
	Id     uuid.UUID
	Prompt string `json:"prompt" validate:"required"`
	Append bool   `json:"append"`
}

type DraftChapterResponse struct {
	Id      uuid.UUID       `json:"id"`
	Content json.RawMessage `json:"content"`
}
