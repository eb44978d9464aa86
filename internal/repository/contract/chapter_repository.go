package contract

import (
	"context"

	"ai-bookwriting-be/internal/entity"
	"ai-bookwriting-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChapterRepository interface {
	Create(ctx context.Context, chapter *entity.Chapter) error
	Update(ctx context.Context, chapter *entity.Chapter) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByBookId(ctx context.Context, bookId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chapter, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chapter, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Content fast-path: autosave and the stats worker update columns
	// without rewriting the whole row.
	UpdateContent(ctx context.Context, id uuid.UUID, content []byte) error
	UpdateStats(ctx context.Context, id uuid.UUID, wordCount, blockCount int) error
	ShiftPositions(ctx context.Context, bookId uuid.UUID, fromPosition int) error
}
