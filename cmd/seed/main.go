package main

import (
	"log"
	"os"

	"ai-bookwriting-be/internal/model"
	"ai-bookwriting-be/pkg/database"
	"ai-bookwriting-be/pkg/richtext"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds a demo author with one book and three chapters so the editor
// has something to open on a fresh database. Running it twice is a no-op.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo author and book...")

	user, created := seedUser(db)
	if !created {
		color.Yellow("Demo user already exists, skipping (%s)", user.Email)
		return
	}
	color.Green("  ✓ user %s", user.Email)

	book := model.Book{
		Title:       "The Salt Road",
		Description: "A travelogue through the old caravan routes.",
		UserId:      user.Id,
	}
	if err := db.Create(&book).Error; err != nil {
		log.Fatalf("Error: Failed to create book: %v", err)
	}
	color.Green("  ✓ book %q", book.Title)

	chapters := []struct {
		title string
		doc   *richtext.Document
	}{
		{"Leaving Tangier", chapterOne()},
		{"The Caravanserai", chapterTwo()},
		{"Notes for Later", richtext.New()},
	}

	for i, c := range chapters {
		content, err := richtext.EncodeJSON(c.doc)
		if err != nil {
			log.Fatalf("Error: Failed to encode chapter content: %v", err)
		}
		words := 0
		for _, root := range c.doc.Roots {
			words += richtext.WordCount(c.doc, root)
		}
		chapter := model.Chapter{
			Title:      c.title,
			Content:    datatypes.JSON(content),
			Position:   i,
			WordCount:  words,
			BlockCount: len(c.doc.Roots),
			BookId:     book.Id,
			UserId:     user.Id,
		}
		if err := db.Create(&chapter).Error; err != nil {
			log.Fatalf("Error: Failed to create chapter: %v", err)
		}
		color.Green("  ✓ chapter %d %q (%d words)", i+1, c.title, words)
	}

	color.Cyan("Done. Login with demo@bookforge.dev / demo1234")
}

func seedUser(db *gorm.DB) (model.User, bool) {
	const email = "demo@bookforge.dev"

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return existing, false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Demo Author",
		Status:       "active",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: Failed to create user: %v", err)
	}
	return user, true
}

func chapterOne() *richtext.Document {
	d := &richtext.Document{}
	d.AppendHeading(1, richtext.Run{Text: "Leaving Tangier"})
	d.AppendParagraph(
		richtext.Run{Text: "The ferry horn sounded twice before dawn, and the "},
		richtext.Run{Text: "whole harbour", Marks: richtext.MarkSet(richtext.Bold)},
		richtext.Run{Text: " seemed to exhale."},
	)
	d.AppendBlockquote(
		richtext.Run{Text: "Every road out of a city is also a road into another.", Marks: richtext.MarkSet(richtext.Italic)},
	)
	d.AppendParagraph(richtext.Run{Text: "We packed light. Salt, they said, would pay for everything else."})
	return d
}

func chapterTwo() *richtext.Document {
	d := &richtext.Document{}
	d.AppendHeading(1, richtext.Run{Text: "The Caravanserai"})
	d.AppendParagraph(richtext.Run{Text: "Three rules of the courtyard, as the keeper recited them:"})
	d.AppendList(richtext.Numbered,
		[]richtext.Run{{Text: "Water the animals before yourself."}},
		[]richtext.Run{{Text: "Trade stories before goods."}},
		[]richtext.Run{{Text: "Leave before the gossip does."}},
	)
	return d
}
