package demo

import (
	"context"
	"fmt"

	"github.com/catalog-service/cmd/api/book"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Seeder interface {
	DeleteAll(ctx context.Context) error
	Save(ctx context.Context, b book.Book, actor string) (book.Book, error)
}

func TestBooks() []book.Book {
	return []book.Book{
		{Isbn: "1234567891", Title: "Northern Lights", Author: "Lyra Silverstar", Price: 9.90, Publisher: "Manning"},
		{Isbn: "1234567892", Title: "Polar Journey", Author: "Iorek Polarson", Price: 12.90, Publisher: "Books Pub"},
	}
}

/* Empties the store and fills it with the demo books. Seeded books carry no audit principal. */
func LoadBookTestData(ctx context.Context, seeder Seeder, logger log.Logger) error {
	if err := seeder.DeleteAll(ctx); err != nil {
		return fmt.Errorf("loading book test data: %w", err)
	}

	books := TestBooks()
	for _, b := range books {
		if _, err := seeder.Save(ctx, b, ""); err != nil {
			return fmt.Errorf("loading book test data, isbn %s: %w", b.Isbn, err)
		}
	}

	level.Info(logger).Log("msg", "Loaded book test data", "books", len(books))
	return nil
}
