package inmemory

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/catalog-service/cmd/api/book"
	"github.com/catalog-service/cmd/api/pkgerrors"
	"github.com/hashicorp/go-memdb"
)

const bookTable = "book"

type InMemoryStore struct {
	db  *memdb.MemDB
	seq *atomic.Int64
	exc *memdb.Txn
}

func NewInMemoryStore() (*InMemoryStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			bookTable: {
				Name: bookTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"isbn": {
						Name:    "isbn",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Isbn"},
					},
				},
			},
		},
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("validating in-memory schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &InMemoryStore{db: db, seq: &atomic.Int64{}}, nil
}

/* Row layout kept in memdb. The ID is zero padded so that the id index iterates in insertion order. */
type AdaptedBook struct {
	ID               string
	Isbn             string
	Title            string
	Author           string
	Price            float64
	Publisher        string
	CreatedDate      time.Time
	LastModifiedDate time.Time
	CreatedBy        *string
	LastModifiedBy   *string
	Version          int
}

func formatID(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func adaptBookToRow(b book.Book) AdaptedBook {
	return AdaptedBook{
		ID:               formatID(b.ID),
		Isbn:             b.Isbn,
		Title:            b.Title,
		Author:           b.Author,
		Price:            b.Price,
		Publisher:        b.Publisher,
		CreatedDate:      b.CreatedDate,
		LastModifiedDate: b.LastModifiedDate,
		CreatedBy:        b.CreatedBy,
		LastModifiedBy:   b.LastModifiedBy,
		Version:          b.Version,
	}
}

func adaptRowToBook(row AdaptedBook) book.Book {
	id, _ := strconv.ParseInt(row.ID, 10, 64)
	return book.Book{
		ID:               id,
		Isbn:             row.Isbn,
		Title:            row.Title,
		Author:           row.Author,
		Price:            row.Price,
		Publisher:        row.Publisher,
		CreatedDate:      row.CreatedDate,
		LastModifiedDate: row.LastModifiedDate,
		CreatedBy:        row.CreatedBy,
		LastModifiedBy:   row.LastModifiedBy,
		Version:          row.Version,
	}
}

/* Returns the transaction to work on. Outside of BeginTx every call opens its own
transaction, and the returned function must be deferred to release it. */
func (store *InMemoryStore) txn(write bool) (*memdb.Txn, bool, func()) {
	if store.exc != nil {
		return store.exc, true, func() {}
	}
	txn := store.db.Txn(write)
	return txn, false, txn.Abort
}

func (store *InMemoryStore) FindByIsbn(ctx context.Context, isbn string) (book.Book, error) {
	txn, _, end := store.txn(false)
	defer end()

	raw, err := txn.First(bookTable, "isbn", isbn)
	if err != nil {
		return book.Book{}, fmt.Errorf("searching by isbn: %w", err)
	}
	if raw == nil {
		return book.Book{}, fmt.Errorf("searching by isbn: %w", book.NewErrBookNotFound(isbn))
	}

	return adaptRowToBook(raw.(AdaptedBook)), nil
}

func (store *InMemoryStore) ExistsByIsbn(ctx context.Context, isbn string) (bool, error) {
	txn, _, end := store.txn(false)
	defer end()

	raw, err := txn.First(bookTable, "isbn", isbn)
	if err != nil {
		return false, fmt.Errorf("checking isbn existence: %w", err)
	}
	return raw != nil, nil
}

func (store *InMemoryStore) FindAll(ctx context.Context) ([]book.Book, error) {
	txn, _, end := store.txn(false)
	defer end()

	it, err := txn.Get(bookTable, "id")
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	books := []book.Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		books = append(books, adaptRowToBook(obj.(AdaptedBook)))
	}
	return books, nil
}

/* Inserts the book when it has no ID yet, otherwise updates the stored record if its version still matches. */
func (store *InMemoryStore) Save(ctx context.Context, b book.Book, actor string) (book.Book, error) {
	txn, insideTx, end := store.txn(true)
	defer end()

	var saved AdaptedBook
	var err error
	if b.ID == 0 {
		saved, err = store.insert(txn, b, actor)
	} else {
		saved, err = store.update(txn, b, actor)
	}
	if err != nil {
		return book.Book{}, err
	}

	if !insideTx {
		txn.Commit()
	}
	return adaptRowToBook(saved), nil
}

func (store *InMemoryStore) insert(txn *memdb.Txn, b book.Book, actor string) (AdaptedBook, error) {
	raw, err := txn.First(bookTable, "isbn", b.Isbn)
	if err != nil {
		return AdaptedBook{}, fmt.Errorf("storing book on db: %w", err)
	}
	if raw != nil {
		return AdaptedBook{}, fmt.Errorf("storing book on db: %w", book.NewErrBookAlreadyExists(b.Isbn))
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	b.ID = store.seq.Add(1)
	b.CreatedDate = now
	b.LastModifiedDate = now
	b.CreatedBy = principal(actor)
	b.LastModifiedBy = principal(actor)
	b.Version = 0

	row := adaptBookToRow(b)
	if err := txn.Insert(bookTable, row); err != nil {
		return AdaptedBook{}, fmt.Errorf("storing book on db: %w", err)
	}
	return row, nil
}

func (store *InMemoryStore) update(txn *memdb.Txn, b book.Book, actor string) (AdaptedBook, error) {
	raw, err := txn.First(bookTable, "id", formatID(b.ID))
	if err != nil {
		return AdaptedBook{}, fmt.Errorf("updating book on db: %w", err)
	}
	if raw == nil {
		return AdaptedBook{}, fmt.Errorf("updating book on db: %w", pkgerrors.ErrResponseBookVersionConflict)
	}

	row := raw.(AdaptedBook)
	if row.Version != b.Version {
		return AdaptedBook{}, fmt.Errorf("updating book on db: %w", pkgerrors.ErrResponseBookVersionConflict)
	}

	row.Title = b.Title
	row.Author = b.Author
	row.Price = b.Price
	row.Publisher = b.Publisher
	row.LastModifiedDate = modifiedAfter(row.LastModifiedDate)
	row.LastModifiedBy = principal(actor)
	row.Version++
	//ISBN, creation date and creator are kept.

	if err := txn.Insert(bookTable, row); err != nil {
		return AdaptedBook{}, fmt.Errorf("updating book on db: %w", err)
	}
	return row, nil
}

func (store *InMemoryStore) DeleteByIsbn(ctx context.Context, isbn string) error {
	txn, insideTx, end := store.txn(true)
	defer end()

	if _, err := txn.DeleteAll(bookTable, "isbn", isbn); err != nil {
		return fmt.Errorf("deleting book from db: %w", err)
	}

	if !insideTx {
		txn.Commit()
	}
	return nil
}

func (store *InMemoryStore) DeleteAll(ctx context.Context) error {
	txn, insideTx, end := store.txn(true)
	defer end()

	if _, err := txn.DeleteAll(bookTable, "id"); err != nil {
		return fmt.Errorf("deleting all books from db: %w", err)
	}

	if !insideTx {
		txn.Commit()
	}
	return nil
}

/* Write time of a record last modified at prev. It is always later than prev, even within the same clock tick. */
func modifiedAfter(prev time.Time) time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func principal(actor string) *string {
	if actor == "" {
		return nil
	}
	return &actor
}

// -- Transactions --

func (store *InMemoryStore) BeginTx(ctx context.Context, opts *sql.TxOptions) (book.Repository, driver.Tx, error) {
	txn := store.db.Txn(true)
	if txn == nil {
		return nil, nil, fmt.Errorf("failed to create transaction")
	}

	txStore := &InMemoryStore{
		db:  store.db,
		seq: store.seq,
		exc: txn,
	}

	return txStore, &TxWrapper{txn: txn}, nil
}

/* Adapts a memdb write transaction to driver.Tx. Rolling back after a commit does nothing. */
type TxWrapper struct {
	txn *memdb.Txn
}

func (tx *TxWrapper) Commit() error {
	tx.txn.Commit()
	return nil
}

func (tx *TxWrapper) Rollback() error {
	tx.txn.Abort()
	return nil
}
