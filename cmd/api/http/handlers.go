package http

//go:generate mockgen -destination=mocks/mock_service.go -package=httpmock github.com/catalog-service/cmd/api/book ServiceAPI

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/catalog-service/cmd/api/auth"
	"github.com/catalog-service/cmd/api/book"
	"github.com/catalog-service/cmd/api/pkgerrors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

type BookHandler struct {
	bookService    book.ServiceAPI
	policy         book.Authorizer
	logger         log.Logger
	requestTimeout time.Duration
}

func NewBookHandler(bookService book.ServiceAPI, policy book.Authorizer, logger log.Logger, requestTimeout time.Duration) *BookHandler {
	return &BookHandler{bookService: bookService, policy: policy, logger: logger, requestTimeout: requestTimeout}
}

type BookEntry struct {
	Isbn      string   `json:"isbn"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Price     *float64 `json:"price"`
	Publisher string   `json:"publisher"`
}

type BookResponse struct {
	ID               int64     `json:"id"`
	Isbn             string    `json:"isbn"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Price            float64   `json:"price"`
	Publisher        *string   `json:"publisher"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
	CreatedBy        *string   `json:"createdBy"`
	LastModifiedBy   *string   `json:"lastModifiedBy"`
	Version          int       `json:"version"`
}

/* Returns every book of the catalog. */
func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	level.Info(h.logger).Log("msg", "Fetching the list of books in the catalog")
	books, err := h.bookService.ViewBookList(ctx, auth.FromContext(ctx))
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	responses := make([]BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, bookToResponse(b))
	}
	responseJSON(w, http.StatusOK, responses)
}

/* Returns the book with that specific ISBN. */
func (h *BookHandler) getBookByIsbn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	isbn := isolateIsbn(r)
	level.Info(h.logger).Log("msg", "Fetching book by isbn", "isbn", isbn)
	returnedBook, err := h.bookService.ViewBookDetails(ctx, auth.FromContext(ctx), isbn)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	responseJSON(w, http.StatusOK, bookToResponse(returnedBook))
}

/* Reads the entry and adds it to the catalog as a new book. */
func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if !h.authorize(ctx, w, auth.OperationCreate) {
		return
	}

	bookEntry, ok := readBookEntry(w, r)
	if !ok {
		return
	}

	level.Info(h.logger).Log("msg", "Adding new book to the catalog", "isbn", bookEntry.Isbn)
	storedBook, err := h.bookService.AddBookToCatalog(ctx, auth.FromContext(ctx), entryToRequest(bookEntry))
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	responseJSON(w, http.StatusCreated, bookToResponse(storedBook))
}

/* Reads the entry and replaces the details of the book, adding it when it is missing. */
func (h *BookHandler) updateBook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if !h.authorize(ctx, w, auth.OperationUpdate) {
		return
	}

	isbn := isolateIsbn(r)
	bookEntry, ok := readBookEntry(w, r)
	if !ok {
		return
	}

	level.Info(h.logger).Log("msg", "Updating book", "isbn", isbn)
	updatedBook, err := h.bookService.EditBookDetails(ctx, auth.FromContext(ctx), isbn, entryToRequest(bookEntry))
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	responseJSON(w, http.StatusOK, bookToResponse(updatedBook))
}

/* Removes the book from the catalog. Answers 204 whether or not it was there. */
func (h *BookHandler) deleteBook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	isbn := isolateIsbn(r)
	level.Info(h.logger).Log("msg", "Deleting book", "isbn", isbn)
	err := h.bookService.RemoveBookFromCatalog(ctx, auth.FromContext(ctx), isbn)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

/* Answers the request by itself when the caller may not perform op. The body of a
write is only read for callers the policy lets through. */
func (h *BookHandler) authorize(ctx context.Context, w http.ResponseWriter, op auth.Operation) bool {
	if err := h.policy.Authorize(auth.FromContext(ctx), op); err != nil {
		h.handleError(ctx, w, err)
		return false
	}
	return true
}

/* Decodes the request body, answering 400 by itself when the JSON is malformed. Unknown fields are ignored. */
func readBookEntry(w http.ResponseWriter, r *http.Request) (BookEntry, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var bookEntry BookEntry
	err := json.NewDecoder(r.Body).Decode(&bookEntry)
	if err != nil {
		errR := pkgerrors.ErrResponseEntryInvalidJSON
		errR.Message += " " + err.Error()
		responseJSON(w, http.StatusBadRequest, errR)
		return BookEntry{}, false
	}
	return bookEntry, true
}

/* Converts from BookEntry type to BookRequest type, with no json tags. */
func entryToRequest(b BookEntry) book.BookRequest {
	return book.BookRequest{
		Isbn:      b.Isbn,
		Title:     b.Title,
		Author:    b.Author,
		Price:     b.Price,
		Publisher: b.Publisher,
	}
}

/* Isolates the ISBN from the URL. */
func isolateIsbn(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("isbn")
}

/*Copy the fields of a book object to an http layer struct with json tags*/
func bookToResponse(b book.Book) BookResponse {
	var publisher *string
	if b.Publisher != "" {
		publisher = &b.Publisher
	}
	return BookResponse{
		ID:               b.ID,
		Isbn:             b.Isbn,
		Title:            b.Title,
		Author:           b.Author,
		Price:            b.Price,
		Publisher:        publisher,
		CreatedDate:      b.CreatedDate,
		LastModifiedDate: b.LastModifiedDate,
		CreatedBy:        b.CreatedBy,
		LastModifiedBy:   b.LastModifiedBy,
		Version:          b.Version,
	}
}

/* Maps a service error to its status code and writes it as a JSON error response. */
func (h *BookHandler) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		level.Warn(h.logger).Log("msg", "request ended early", "err", err)
		errR := pkgerrors.ErrResponseRequestTimeout
		errR.Message += " " + ctxErr.Error()
		responseJSON(w, http.StatusGatewayTimeout, errR)
		return
	}

	status := statusFor(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	var errR pkgerrors.ErrResponse
	if status == http.StatusInternalServerError || !errors.As(err, &errR) {
		level.Error(h.logger).Log("msg", "request failed", "err", err)
		responseJSON(w, http.StatusInternalServerError, pkgerrors.ErrResponseInternal)
		return
	}

	level.Info(h.logger).Log("msg", "request rejected", "err", err)
	responseJSON(w, status, errR)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pkgerrors.ErrResponseBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkgerrors.ErrResponseBookAlreadyExists),
		errors.Is(err, pkgerrors.ErrResponseBookVersionConflict):
		return http.StatusConflict
	case errors.Is(err, pkgerrors.ErrResponseUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, pkgerrors.ErrResponseForbidden):
		return http.StatusForbidden
	case errors.Is(err, pkgerrors.ErrResponseBookEntryInvalidFields),
		errors.Is(err, pkgerrors.ErrResponseEntryInvalidJSON):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

/*Writes a JSON response into a http.ResponseWriter. */
func responseJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //The status line is already sent, an encoding failure cannot be reported.
}
