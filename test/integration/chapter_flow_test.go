package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-bookwriting-be/internal/entity"
	"ai-bookwriting-be/internal/repository/specification"
	"ai-bookwriting-be/internal/repository/unitofwork"
	"ai-bookwriting-be/pkg/database"
	"ai-bookwriting-be/pkg/richtext"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func setupIntegration(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	return unitofwork.NewRepositoryFactory(gormDB)
}

func createTestUser(t *testing.T, uow unitofwork.UnitOfWork) *entity.User {
	t.Helper()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        "test-integration-" + uuid.New().String() + "@example.com",
		PasswordHash: "not-a-real-hash",
		FullName:     "Integration Test User",
		Status:       "active",
	}
	err := uow.UserRepository().Create(context.Background(), user)
	assert.NoError(t, err)
	return user
}

func TestChapterContentRoundTrip(t *testing.T) {
	uowFactory := setupIntegration(t)
	uow := uowFactory.NewUnitOfWork(context.Background())
	ctx := context.Background()

	user := createTestUser(t, uow)

	book := &entity.Book{
		Id:     uuid.New(),
		Title:  "Integration Book",
		UserId: user.Id,
	}
	err := uow.BookRepository().Create(ctx, book)
	assert.NoError(t, err)

	// New chapters start as the minimal empty document
	empty, err := richtext.EncodeJSON(richtext.New())
	assert.NoError(t, err)

	chapter := &entity.Chapter{
		Id:         uuid.New(),
		Title:      "Chapter One",
		Content:    empty,
		Position:   0,
		BlockCount: 1,
		BookId:     book.Id,
		UserId:     user.Id,
	}
	err = uow.ChapterRepository().Create(ctx, chapter)
	assert.NoError(t, err)

	t.Run("autosave stores document JSON", func(t *testing.T) {
		d := &richtext.Document{}
		d.AppendHeading(1, richtext.Run{Text: "Title"})
		d.AppendParagraph(richtext.Run{Text: "hello ", Marks: 0}, richtext.Run{Text: "world", Marks: richtext.MarkSet(richtext.Bold)})
		content, err := richtext.EncodeJSON(d)
		assert.NoError(t, err)

		err = uow.ChapterRepository().UpdateContent(ctx, chapter.Id, content)
		assert.NoError(t, err)

		found, err := uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: chapter.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		loaded, err := richtext.DecodeJSON(found.Content)
		assert.NoError(t, err)
		assert.Equal(t, "# Title\n\nhello **world**", richtext.Serialize(loaded))
	})

	t.Run("stats update touches counters only", func(t *testing.T) {
		err := uow.ChapterRepository().UpdateStats(ctx, chapter.Id, 3, 2)
		assert.NoError(t, err)

		found, err := uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: chapter.Id})
		assert.NoError(t, err)
		assert.Equal(t, 3, found.WordCount)
		assert.Equal(t, 2, found.BlockCount)
		assert.Equal(t, "Chapter One", found.Title)
	})

	t.Run("ownership filter hides other users chapters", func(t *testing.T) {
		found, err := uow.ChapterRepository().FindOne(ctx,
			specification.ByID{ID: chapter.Id},
			specification.UserOwnedBy{UserID: uuid.New()},
		)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	// Cleanup
	assert.NoError(t, uow.ChapterRepository().DeleteAllByBookId(ctx, book.Id))
	assert.NoError(t, uow.BookRepository().Delete(ctx, book.Id))
}

func TestChapterReorderTransaction(t *testing.T) {
	uowFactory := setupIntegration(t)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	user := createTestUser(t, uow)

	book := &entity.Book{Id: uuid.New(), Title: "Reorder Book", UserId: user.Id}
	assert.NoError(t, uow.BookRepository().Create(ctx, book))

	empty, _ := richtext.EncodeJSON(richtext.New())
	titles := []string{"First", "Second", "Third"}
	for i, title := range titles {
		ch := &entity.Chapter{
			Id:       uuid.New(),
			Title:    title,
			Content:  empty,
			Position: i,
			BookId:   book.Id,
			UserId:   user.Id,
		}
		assert.NoError(t, uow.ChapterRepository().Create(ctx, ch))
	}

	// Make room at position 1 inside a transaction, like the Move operation does
	txUow := uowFactory.NewUnitOfWork(ctx)
	assert.NoError(t, txUow.Begin(ctx))
	assert.NoError(t, txUow.ChapterRepository().ShiftPositions(ctx, book.Id, 1))
	assert.NoError(t, txUow.Commit())

	chapters, err := uow.ChapterRepository().FindAll(ctx,
		specification.FilterBy{Field: "book_id", Value: book.Id},
		specification.OrderByPosition{},
	)
	assert.NoError(t, err)
	assert.Len(t, chapters, 3)
	assert.Equal(t, "First", chapters[0].Title)
	assert.Equal(t, 0, chapters[0].Position)
	assert.Equal(t, "Second", chapters[1].Title)
	assert.Equal(t, 2, chapters[1].Position)
	assert.Equal(t, 3, chapters[2].Position)

	shifted, err := uow.ChapterRepository().FindAll(ctx,
		specification.FilterBy{Field: "book_id", Value: book.Id},
		specification.FromPosition{Position: 2},
	)
	assert.NoError(t, err)
	assert.Len(t, shifted, 2)

	// Cleanup
	assert.NoError(t, uow.ChapterRepository().DeleteAllByBookId(ctx, book.Id))
	assert.NoError(t, uow.BookRepository().Delete(ctx, book.Id))
}
