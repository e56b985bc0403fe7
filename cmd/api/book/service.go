package book

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=bookmock
//go:generate mockgen -destination=mocks/mock_tx.go -package=bookmock database/sql/driver Tx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/catalog-service/cmd/api/auth"
	"github.com/catalog-service/cmd/api/validator"
)

type ServiceAPI interface {
	ViewBookList(ctx context.Context, caller *auth.Identity) ([]Book, error)
	ViewBookDetails(ctx context.Context, caller *auth.Identity, isbn string) (Book, error)
	AddBookToCatalog(ctx context.Context, caller *auth.Identity, req BookRequest) (Book, error)
	EditBookDetails(ctx context.Context, caller *auth.Identity, isbn string, req BookRequest) (Book, error)
	RemoveBookFromCatalog(ctx context.Context, caller *auth.Identity, isbn string) error
}

/* Persistence of books. Save inserts a book with a zero ID and updates it otherwise;
actor is the principal written into the audit fields, empty when anonymous. */
type Repository interface {
	FindByIsbn(ctx context.Context, isbn string) (Book, error)
	ExistsByIsbn(ctx context.Context, isbn string) (bool, error)
	Save(ctx context.Context, b Book, actor string) (Book, error)
	DeleteByIsbn(ctx context.Context, isbn string) error
	FindAll(ctx context.Context) ([]Book, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Repository, driver.Tx, error)
}

type Authorizer interface {
	Authorize(caller *auth.Identity, op auth.Operation) error
}

type Service struct {
	repo   Repository
	policy Authorizer
}

func NewService(repo Repository, policy Authorizer) *Service {
	return &Service{repo: repo, policy: policy}
}

func (s *Service) ViewBookList(ctx context.Context, caller *auth.Identity) ([]Book, error) {
	if err := s.policy.Authorize(caller, auth.OperationRead); err != nil {
		return nil, fmt.Errorf("viewing book list: %w", err)
	}

	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("viewing book list: %w", err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func (s *Service) ViewBookDetails(ctx context.Context, caller *auth.Identity, isbn string) (Book, error) {
	if err := s.policy.Authorize(caller, auth.OperationRead); err != nil {
		return Book{}, fmt.Errorf("viewing book details: %w", err)
	}

	b, err := s.repo.FindByIsbn(ctx, isbn)
	if err != nil {
		return Book{}, fmt.Errorf("viewing book details: %w", err)
	}
	return b, nil
}

/* Adds a new book to the catalog, refusing an ISBN that is already there. */
func (s *Service) AddBookToCatalog(ctx context.Context, caller *auth.Identity, req BookRequest) (Book, error) {
	if err := s.policy.Authorize(caller, auth.OperationCreate); err != nil {
		return Book{}, fmt.Errorf("adding book to catalog: %w", err)
	}

	v := validator.New()
	ValidateBookRequest(v, req)
	if err := NewErrValidation(v); err != nil {
		return Book{}, fmt.Errorf("adding book to catalog: %w", err)
	}

	var saved Book
	err := s.inTx(ctx, func(txRepo Repository) error {
		exists, err := txRepo.ExistsByIsbn(ctx, req.Isbn)
		if err != nil {
			return err
		}
		if exists {
			return NewErrBookAlreadyExists(req.Isbn)
		}

		saved, err = txRepo.Save(ctx, Book{Isbn: req.Isbn}.withDetails(req), auth.Principal(caller))
		return err
	})
	if err != nil {
		return Book{}, fmt.Errorf("adding book to catalog: %w", err)
	}
	return saved, nil
}

/* Replaces the details of the book stored under isbn, or adds it under that ISBN when
it is not in the catalog yet. The stored identity and creation audit are kept. */
func (s *Service) EditBookDetails(ctx context.Context, caller *auth.Identity, isbn string, req BookRequest) (Book, error) {
	if err := s.policy.Authorize(caller, auth.OperationUpdate); err != nil {
		return Book{}, fmt.Errorf("editing book details: %w", err)
	}

	req.Isbn = isbn
	v := validator.New()
	ValidateBookRequest(v, req)
	if err := NewErrValidation(v); err != nil {
		return Book{}, fmt.Errorf("editing book details: %w", err)
	}

	var saved Book
	err := s.inTx(ctx, func(txRepo Repository) error {
		exists, err := txRepo.ExistsByIsbn(ctx, isbn)
		if err != nil {
			return err
		}

		toSave := Book{Isbn: isbn}
		if exists {
			toSave, err = txRepo.FindByIsbn(ctx, isbn)
			if err != nil {
				return err
			}
		}

		saved, err = txRepo.Save(ctx, toSave.withDetails(req), auth.Principal(caller))
		return err
	})
	if err != nil {
		return Book{}, fmt.Errorf("editing book details: %w", err)
	}
	return saved, nil
}

/* Removes the book from the catalog. Removing a book that is not there succeeds. */
func (s *Service) RemoveBookFromCatalog(ctx context.Context, caller *auth.Identity, isbn string) error {
	if err := s.policy.Authorize(caller, auth.OperationDelete); err != nil {
		return fmt.Errorf("removing book from catalog: %w", err)
	}

	err := s.inTx(ctx, func(txRepo Repository) error {
		return txRepo.DeleteByIsbn(ctx, isbn)
	})
	if err != nil {
		return fmt.Errorf("removing book from catalog: %w", err)
	}
	return nil
}

/* Runs fn inside one repository transaction, committing only when fn succeeds. */
func (s *Service) inTx(ctx context.Context, fn func(txRepo Repository) error) error {
	txRepo, tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
