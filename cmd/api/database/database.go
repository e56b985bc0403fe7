package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/catalog-service/cmd/api/book"
	"github.com/catalog-service/cmd/api/pkgerrors"
	"github.com/doug-martin/goqu/v9"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	bookTable             = "book"
	uniqueViolationCode   = "23505"
	dialectPostgres       = "postgres"
	connectionPingTimeout = 5 * time.Second
)

var dialect = goqu.Dialect(dialectPostgres)

var bookColumns = []interface{}{
	"id", "isbn", "title", "author", "price", "publisher",
	"created_date", "last_modified_date", "created_by", "last_modified_by", "version",
}

type DBTX interface {
	sqlx.ExtContext
}

type Store struct {
	db  *sqlx.DB
	exc *Executor
}

type Executor struct {
	DBTX
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		exc: NewExc(db),
	}
}

func NewExc(dbtx DBTX) *Executor {
	return &Executor{DBTX: dbtx}
}

func (store *Store) BeginTx(ctx context.Context, opts *sql.TxOptions) (book.Repository, driver.Tx, error) {
	tx, err := store.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}

	txRepo := NewStore(store.db)
	txRepo.exc = NewExc(tx)
	return txRepo, tx, nil
}

/* Connects to the database trought a connection string and returns a pointer to a valid DB object (*sqlx.DB). */
func ConnectDb(connStr string) (*sqlx.DB, error) {
	sqlDB, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to db, opening: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectionPingTimeout)
	defer cancel()
	err = sqlDB.PingContext(ctx)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to db, pinging: %w", err)
	}

	return sqlDB, nil
}

/* Applies every pending migration found under path. An up to date schema is reported as migrate.ErrNoChange. */
func MigrationUp(store *Store, path string) error {
	dbDriver, err := postgres.WithInstance(store.db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", path),
		"postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	err = m.Up()
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

type bookRow struct {
	ID               int64          `db:"id"`
	Isbn             string         `db:"isbn"`
	Title            string         `db:"title"`
	Author           string         `db:"author"`
	Price            float64        `db:"price"`
	Publisher        sql.NullString `db:"publisher"`
	CreatedDate      time.Time      `db:"created_date"`
	LastModifiedDate time.Time      `db:"last_modified_date"`
	CreatedBy        sql.NullString `db:"created_by"`
	LastModifiedBy   sql.NullString `db:"last_modified_by"`
	Version          int            `db:"version"`
}

func (row bookRow) toBook() book.Book {
	return book.Book{
		ID:               row.ID,
		Isbn:             row.Isbn,
		Title:            row.Title,
		Author:           row.Author,
		Price:            row.Price,
		Publisher:        row.Publisher.String,
		CreatedDate:      row.CreatedDate.UTC(),
		LastModifiedDate: row.LastModifiedDate.UTC(),
		CreatedBy:        nullableToPointer(row.CreatedBy),
		LastModifiedBy:   nullableToPointer(row.LastModifiedBy),
		Version:          row.Version,
	}
}

func nullableToPointer(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

/* Write time of a row last modified at prev, kept at the microsecond precision of timestamptz. */
func modifiedAfter(prev time.Time) time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

/* Searches a book in database based on ISBN and returns it if succeed. */
func (store *Store) FindByIsbn(ctx context.Context, isbn string) (book.Book, error) {
	query, args, err := dialect.From(bookTable).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("isbn").Eq(isbn)).
		ToSQL()
	if err != nil {
		return book.Book{}, fmt.Errorf("searching by isbn, building query: %w", err)
	}

	var row bookRow
	err = sqlx.GetContext(ctx, store.exc, &row, query, args...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return book.Book{}, fmt.Errorf("searching by isbn: %w", book.NewErrBookNotFound(isbn))
		default:
			return book.Book{}, fmt.Errorf("searching by isbn: %w", err)
		}
	}

	return row.toBook(), nil
}

func (store *Store) ExistsByIsbn(ctx context.Context, isbn string) (bool, error) {
	query, args, err := dialect.From(bookTable).Prepared(true).
		Select(goqu.COUNT("*")).
		Where(goqu.C("isbn").Eq(isbn)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("checking isbn existence, building query: %w", err)
	}

	var count int
	err = sqlx.GetContext(ctx, store.exc, &count, query, args...)
	if err != nil {
		return false, fmt.Errorf("checking isbn existence: %w", err)
	}
	return count > 0, nil
}

/* Returns every stored book ordered by its surrogate id. */
func (store *Store) FindAll(ctx context.Context) ([]book.Book, error) {
	query, args, err := dialect.From(bookTable).Prepared(true).
		Select(bookColumns...).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("listing books from db, building query: %w", err)
	}

	rows := []bookRow{}
	err = sqlx.SelectContext(ctx, store.exc, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	books := make([]book.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toBook())
	}
	return books, nil
}

/* Inserts the book when it has no ID yet, otherwise updates the stored row if its version still matches. */
func (store *Store) Save(ctx context.Context, b book.Book, actor string) (book.Book, error) {
	if b.ID == 0 {
		return store.insert(ctx, b, actor)
	}
	return store.update(ctx, b, actor)
}

func (store *Store) insert(ctx context.Context, b book.Book, actor string) (book.Book, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	query, args, err := dialect.Insert(bookTable).Prepared(true).
		Rows(goqu.Record{
			"isbn":               b.Isbn,
			"title":              b.Title,
			"author":             b.Author,
			"price":              b.Price,
			"publisher":          nullable(b.Publisher),
			"created_date":       now,
			"last_modified_date": now,
			"created_by":         nullable(actor),
			"last_modified_by":   nullable(actor),
			"version":            0,
		}).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return book.Book{}, fmt.Errorf("storing book on db, building query: %w", err)
	}

	var row bookRow
	err = sqlx.GetContext(ctx, store.exc, &row, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return book.Book{}, fmt.Errorf("storing book on db: %w", book.NewErrBookAlreadyExists(b.Isbn))
		}
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}

	return row.toBook(), nil
}

func (store *Store) update(ctx context.Context, b book.Book, actor string) (book.Book, error) {
	query, args, err := dialect.Update(bookTable).Prepared(true).
		Set(goqu.Record{
			"title":              b.Title,
			"author":             b.Author,
			"price":              b.Price,
			"publisher":          nullable(b.Publisher),
			"last_modified_date": modifiedAfter(b.LastModifiedDate),
			"last_modified_by":   nullable(actor),
			"version":            b.Version + 1,
		}).
		Where(goqu.Ex{"id": b.ID, "version": b.Version}).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return book.Book{}, fmt.Errorf("updating on db, building query: %w", err)
	}

	var row bookRow
	err = sqlx.GetContext(ctx, store.exc, &row, query, args...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows): //The row is gone or another write bumped its version.
			return book.Book{}, fmt.Errorf("updating on db: %w", pkgerrors.ErrResponseBookVersionConflict)
		default:
			return book.Book{}, fmt.Errorf("updating on db: %w", err)
		}
	}

	return row.toBook(), nil
}

func (store *Store) DeleteByIsbn(ctx context.Context, isbn string) error {
	query, args, err := dialect.Delete(bookTable).Prepared(true).
		Where(goqu.C("isbn").Eq(isbn)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("deleting book from db, building query: %w", err)
	}

	_, err = store.exc.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting book from db: %w", err)
	}
	return nil
}

func (store *Store) DeleteAll(ctx context.Context) error {
	query, args, err := dialect.Delete(bookTable).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("deleting all books from db, building query: %w", err)
	}

	_, err = store.exc.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting all books from db: %w", err)
	}
	return nil
}
