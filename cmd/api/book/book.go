package book

import (
	"time"

	"github.com/catalog-service/cmd/api/validator"
)

type Book struct {
	ID               int64
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

/* Client supplied fields of a book. Identity, version and audit fields are never taken from a request. */
type BookRequest struct {
	Isbn      string
	Title     string
	Author    string
	Price     *float64
	Publisher string
}

/* Checks every field of a request and collects the failures in v. */
func ValidateBookRequest(v *validator.Validator, req BookRequest) {
	v.Check(req.Isbn != "", "isbn", "the book ISBN must be defined.")
	v.Check(req.Isbn == "" || validator.Matches(req.Isbn, validator.IsbnRX), "isbn", "the ISBN format must be valid.")
	v.Check(validator.NotBlank(req.Title), "title", "the book title must be defined.")
	v.Check(validator.NotBlank(req.Author), "author", "the book author must be defined.")
	v.Check(req.Price != nil, "price", "the book price must be defined.")
	v.Check(req.Price == nil || *req.Price >= 0, "price", "the book price must be greater than or equal to zero.")
}

/* Copies the client supplied fields of req into b, leaving the stored identity untouched. */
func (b Book) withDetails(req BookRequest) Book {
	b.Title = req.Title
	b.Author = req.Author
	if req.Price != nil {
		b.Price = *req.Price
	}
	b.Publisher = req.Publisher
	return b
}
