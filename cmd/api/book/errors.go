package book

import (
	"github.com/catalog-service/cmd/api/pkgerrors"
	"github.com/catalog-service/cmd/api/validator"
)

func NewErrBookNotFound(isbn string) error {
	return pkgerrors.ErrResponseBookNotFound.WithMessage("A book with ISBN %s was not found.", isbn)
}

func NewErrBookAlreadyExists(isbn string) error {
	return pkgerrors.ErrResponseBookAlreadyExists.WithMessage("Book with ISBN %s already exists.", isbn)
}

/* Turns the failures gathered by v into an invalid fields response, nil when there are none. */
func NewErrValidation(v *validator.Validator) error {
	if v.Valid() {
		return nil
	}
	errR := pkgerrors.ErrResponseBookEntryInvalidFields
	errR.Fields = v.Errors
	return errR
}
