package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type Position struct {
	Node   int `json:"node"`
	Offset int `json:"offset" validate:"min=0"`
}

type Selection struct {
	Anchor Position `json:"anchor"`
	Focus  Position `json:"focus"`
}

// EditorCommandRequest applies one toggle command to a chapter document.
// Exactly one of Mark or Block must be set, matching Kind.
type EditorCommandRequest struct {
	Id        uuid.UUID
	Kind      string    `json:"kind" validate:"required,oneof=toggle_mark toggle_block"`
	Mark      string    `json:"mark,omitempty"`
	Block     string    `json:"block,omitempty"`
	Selection Selection `json:"selection"`
}

type EditorCommandResponse struct {
	Id         uuid.UUID       `json:"id"`
	Content    json.RawMessage `json:"content"`
	WordCount  int             `json:"word_count"`
	BlockCount int             `json:"block_count"`
}

type SelectionStateRequest struct {
	Id        uuid.UUID
	Selection Selection `json:"selection"`
}

// SelectionStateResponse powers toolbar highlighting: which marks are
// active across the selection and which block type the selection sits in.
type SelectionStateResponse struct {
	ActiveMarks  []string `json:"active_marks"`
	ActiveBlocks []string `json:"active_blocks"`
}
