package book_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/catalog-service/cmd/api/auth"
	"github.com/catalog-service/cmd/api/book"
	bookmock "github.com/catalog-service/cmd/api/book/mocks"
	"github.com/catalog-service/cmd/api/inmemory"
	"github.com/catalog-service/cmd/api/pkgerrors"
	"github.com/matryer/is"
	gomock "go.uber.org/mock/gomock"
)

var ctx context.Context = context.Background()

var employee = &auth.Identity{Username: "john", Roles: []string{auth.RoleEmployee}}
var customer = &auth.Identity{Username: "bjorn", Roles: []string{"customer"}}

func newPolicy(t *testing.T) *auth.Policy {
	t.Helper()
	policy, err := auth.NewDefaultPolicy()
	if err != nil {
		t.Fatal(err)
	}
	return policy
}

/* Sets the repository up to hand itself out as the transaction scoped repository. */
func expectTx(mockRepo *bookmock.MockRepository, mockTx *bookmock.MockTx, commit bool) {
	mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(mockRepo, mockTx, nil)
	if commit {
		mockTx.EXPECT().Commit().Return(nil)
	}
	mockTx.EXPECT().Rollback().Return(sql.ErrTxDone).AnyTimes()
}

func northernLights() book.BookRequest {
	return book.BookRequest{
		Isbn:      "1234567891",
		Title:     "Northern Lights",
		Author:    "Lyra Silverstar",
		Price:     toPointer(9.90),
		Publisher: "Manning",
	}
}

func TestAddBookToCatalog(t *testing.T) {

	t.Run("adds a book without errors", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		req := northernLights()
		expectTx(mockRepo, mockTx, true)
		mockRepo.EXPECT().ExistsByIsbn(gomock.Any(), req.Isbn).Return(false, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any(), "john").DoAndReturn(func(ctx context.Context, b book.Book, actor string) (book.Book, error) {
			is.Equal(b.ID, int64(0))
			is.Equal(b.Isbn, req.Isbn)
			is.Equal(b.Title, req.Title)
			is.Equal(b.Author, req.Author)
			is.Equal(b.Price, *req.Price)
			is.Equal(b.Publisher, req.Publisher)
			b.ID = 1
			b.CreatedDate = time.Now().UTC()
			b.LastModifiedDate = b.CreatedDate
			b.CreatedBy = toPointer(actor)
			b.LastModifiedBy = toPointer(actor)
			return b, nil
		})

		created, err := mS.AddBookToCatalog(ctx, employee, req)
		is.NoErr(err)
		is.Equal(created.ID, int64(1))
		is.Equal(created.Isbn, req.Isbn)
		is.Equal(created.Version, 0)
		is.Equal(*created.CreatedBy, "john")
	})

	t.Run("expected already exists error", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		req := northernLights()
		expectTx(mockRepo, mockTx, false)
		mockRepo.EXPECT().ExistsByIsbn(gomock.Any(), req.Isbn).Return(true, nil)

		_, err := mS.AddBookToCatalog(ctx, employee, req)
		is.True(errors.Is(err, pkgerrors.ErrResponseBookAlreadyExists))

		var errR pkgerrors.ErrResponse
		is.True(errors.As(err, &errR))
		is.Equal(errR.Message, "Book with ISBN 1234567891 already exists.")
	})

	t.Run("expected invalid fields error", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		req := book.BookRequest{
			Isbn:   "12345",
			Title:  " ",
			Author: "Lyra Silverstar",
			Price:  toPointer(-1.0),
		}

		_, err := mS.AddBookToCatalog(ctx, employee, req)
		is.True(errors.Is(err, pkgerrors.ErrResponseBookEntryInvalidFields))

		var errR pkgerrors.ErrResponse
		is.True(errors.As(err, &errR))
		is.Equal(len(errR.Fields), 3)
		is.True(errR.Fields["isbn"] != "")
		is.True(errR.Fields["title"] != "")
		is.True(errR.Fields["price"] != "")
	})

	t.Run("expected invalid fields error for a missing price", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		req := northernLights()
		req.Price = nil

		_, err := mS.AddBookToCatalog(ctx, employee, req)
		is.True(errors.Is(err, pkgerrors.ErrResponseBookEntryInvalidFields))
	})

	t.Run("a free book is valid", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		req := northernLights()
		req.Price = toPointer(0.0)
		expectTx(mockRepo, mockTx, true)
		mockRepo.EXPECT().ExistsByIsbn(gomock.Any(), req.Isbn).Return(false, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, b book.Book, actor string) (book.Book, error) {
			return b, nil
		})

		created, err := mS.AddBookToCatalog(ctx, employee, req)
		is.NoErr(err)
		is.Equal(created.Price, 0.0)
	})

	t.Run("anonymous callers are unauthenticated", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		_, err := mS.AddBookToCatalog(ctx, nil, northernLights())
		is.True(errors.Is(err, pkgerrors.ErrResponseUnauthenticated))
	})

	t.Run("callers without the employee role are forbidden", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		_, err := mS.AddBookToCatalog(ctx, customer, northernLights())
		is.True(errors.Is(err, pkgerrors.ErrResponseForbidden))
	})

	t.Run("authorization happens before validation", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockPolicy := bookmock.NewMockAuthorizer(ctrl)
		mS := book.NewService(mockRepo, mockPolicy)

		mockPolicy.EXPECT().Authorize(nil, auth.OperationCreate).Return(pkgerrors.ErrResponseUnauthenticated)

		_, err := mS.AddBookToCatalog(ctx, nil, book.BookRequest{})
		is.True(errors.Is(err, pkgerrors.ErrResponseUnauthenticated))
	})

	t.Run("repository failures roll the transaction back", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		errDB := errors.New("connection reset by peer")
		mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(mockRepo, mockTx, nil)
		mockTx.EXPECT().Rollback().Return(nil)
		mockRepo.EXPECT().ExistsByIsbn(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(book.Book{}, errDB)

		_, err := mS.AddBookToCatalog(ctx, employee, northernLights())
		is.True(errors.Is(err, errDB))
	})
}

func TestEditBookDetails(t *testing.T) {

	t.Run("edits a stored book keeping its identity", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		created := time.Now().UTC().Add(-time.Hour)
		stored := book.Book{
			ID:               7,
			Isbn:             "1234567891",
			Title:            "Northern Lights",
			Author:           "Lyra Silverstar",
			Price:            9.90,
			Publisher:        "Manning",
			CreatedDate:      created,
			LastModifiedDate: created,
			CreatedBy:        toPointer("isabelle"),
			LastModifiedBy:   toPointer("isabelle"),
			Version:          0,
		}
		req := book.BookRequest{
			Title:  "Northern Lights",
			Author: "Lyra Silverstar",
			Price:  toPointer(12.90),
		}

		expectTx(mockRepo, mockTx, true)
		mockRepo.EXPECT().ExistsByIsbn(gomock.Any(), stored.Isbn).Return(true, nil)
		mockRepo.EXPECT().FindByIsbn(gomock.Any(), stored.Isbn).Return(stored, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any(), "john").DoAndReturn(func(ctx context.Context, b book.Book, actor string) (book.Book, error) {
			is.Equal(b.ID, stored.ID)
			is.Equal(b.Version, stored.Version)
			is.True(b.CreatedDate.Equal(stored.CreatedDate))
			is.Equal(*b.CreatedBy, "isabelle")
			is.Equal(b.Price, 12.90)
			is.Equal(b.Publisher, "")
			b.Version++
			b.LastModifiedDate = time.Now().UTC()
			b.LastModifiedBy = toPointer(actor)
			return b, nil
		})

		edited, err := mS.EditBookDetails(ctx, employee, stored.Isbn, req)
		is.NoErr(err)
		is.Equal(edited.ID, stored.ID)
		is.Equal(edited.Version, 1)
		is.Equal(*edited.CreatedBy, "isabelle")
		is.Equal(*edited.LastModifiedBy, "john")
		is.True(edited.LastModifiedDate.After(stored.LastModifiedDate))
	})

	t.Run("creates the book under the path isbn when it is missing", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		req := northernLights()
		req.Isbn = "9999999999"

		expectTx(mockRepo, mockTx, true)
		mockRepo.EXPECT().ExistsByIsbn(gomock.Any(), "1234567892").Return(false, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any(), "john").DoAndReturn(func(ctx context.Context, b book.Book, actor string) (book.Book, error) {
			is.Equal(b.ID, int64(0))
			is.Equal(b.Isbn, "1234567892")
			b.ID = 2
			return b, nil
		})

		saved, err := mS.EditBookDetails(ctx, employee, "1234567892", req)
		is.NoErr(err)
		is.Equal(saved.Isbn, "1234567892")
	})

	t.Run("an edit right after the add moves the modification date forward", func(t *testing.T) {
		is := is.New(t)
		store, err := inmemory.NewInMemoryStore()
		is.NoErr(err)
		mS := book.NewService(store, newPolicy(t))

		for i := 0; i < 200; i++ {
			req := northernLights()
			req.Isbn = fmt.Sprintf("%010d", i)

			added, err := mS.AddBookToCatalog(ctx, employee, req)
			is.NoErr(err)

			edited, err := mS.EditBookDetails(ctx, employee, req.Isbn, req)
			is.NoErr(err)
			is.Equal(edited.Version, added.Version+1)
			is.True(edited.CreatedDate.Equal(added.CreatedDate))
			is.True(edited.LastModifiedDate.After(added.LastModifiedDate))
		}
	})

	t.Run("expected invalid fields error", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		_, err := mS.EditBookDetails(ctx, employee, "1234567891", book.BookRequest{Title: "Northern Lights"})
		is.True(errors.Is(err, pkgerrors.ErrResponseBookEntryInvalidFields))
	})

	t.Run("expected version conflict error", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		expectTx(mockRepo, mockTx, false)
		mockRepo.EXPECT().ExistsByIsbn(gomock.Any(), "1234567891").Return(true, nil)
		mockRepo.EXPECT().FindByIsbn(gomock.Any(), "1234567891").Return(book.Book{ID: 1, Isbn: "1234567891"}, nil)
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(book.Book{}, pkgerrors.ErrResponseBookVersionConflict)

		_, err := mS.EditBookDetails(ctx, employee, "1234567891", northernLights())
		is.True(errors.Is(err, pkgerrors.ErrResponseBookVersionConflict))
	})

	t.Run("anonymous and non employee callers are rejected", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		_, err := mS.EditBookDetails(ctx, nil, "1234567891", northernLights())
		is.True(errors.Is(err, pkgerrors.ErrResponseUnauthenticated))

		_, err = mS.EditBookDetails(ctx, customer, "1234567891", northernLights())
		is.True(errors.Is(err, pkgerrors.ErrResponseForbidden))
	})
}

func TestRemoveBookFromCatalog(t *testing.T) {

	t.Run("removes a book without errors", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		expectTx(mockRepo, mockTx, true)
		mockRepo.EXPECT().DeleteByIsbn(gomock.Any(), "1234567891").Return(nil)

		is.NoErr(mS.RemoveBookFromCatalog(ctx, employee, "1234567891"))
	})

	t.Run("removing twice succeeds", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mockTx := bookmock.NewMockTx(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		mockRepo.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(mockRepo, mockTx, nil).Times(2)
		mockTx.EXPECT().Commit().Return(nil).Times(2)
		mockTx.EXPECT().Rollback().Return(sql.ErrTxDone).AnyTimes()
		mockRepo.EXPECT().DeleteByIsbn(gomock.Any(), "1234567891").Return(nil).Times(2)

		is.NoErr(mS.RemoveBookFromCatalog(ctx, employee, "1234567891"))
		is.NoErr(mS.RemoveBookFromCatalog(ctx, employee, "1234567891"))
	})

	t.Run("anonymous and non employee callers are rejected", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		err := mS.RemoveBookFromCatalog(ctx, nil, "1234567891")
		is.True(errors.Is(err, pkgerrors.ErrResponseUnauthenticated))

		err = mS.RemoveBookFromCatalog(ctx, customer, "1234567891")
		is.True(errors.Is(err, pkgerrors.ErrResponseForbidden))
	})
}

func TestViewBookDetails(t *testing.T) {

	t.Run("anyone can view a book", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		stored := book.Book{ID: 1, Isbn: "1234567891", Title: "Northern Lights"}
		mockRepo.EXPECT().FindByIsbn(gomock.Any(), stored.Isbn).Return(stored, nil).Times(3)

		for _, caller := range []*auth.Identity{nil, customer, employee} {
			b, err := mS.ViewBookDetails(ctx, caller, stored.Isbn)
			is.NoErr(err)
			is.Equal(b, stored)
		}
	})

	t.Run("expected not found error", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		mockRepo.EXPECT().FindByIsbn(gomock.Any(), "1234567891").Return(book.Book{}, book.NewErrBookNotFound("1234567891"))

		_, err := mS.ViewBookDetails(ctx, nil, "1234567891")
		is.True(errors.Is(err, pkgerrors.ErrResponseBookNotFound))
	})
}

func TestViewBookList(t *testing.T) {

	t.Run("lists every stored book", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		stored := []book.Book{{ID: 1, Isbn: "1234567891"}, {ID: 2, Isbn: "1234567892"}}
		mockRepo.EXPECT().FindAll(gomock.Any()).Return(stored, nil)

		books, err := mS.ViewBookList(ctx, nil)
		is.NoErr(err)
		is.Equal(books, stored)
	})

	t.Run("an empty catalog is an empty list", func(t *testing.T) {
		is := is.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := bookmock.NewMockRepository(ctrl)
		mS := book.NewService(mockRepo, newPolicy(t))

		mockRepo.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

		books, err := mS.ViewBookList(ctx, customer)
		is.NoErr(err)
		is.True(books != nil)
		is.Equal(len(books), 0)
	})
}

func toPointer[T any](v T) *T {
	return &v
}
