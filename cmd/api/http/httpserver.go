package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/catalog-service/cmd/api/auth"
	"github.com/go-kit/log"
	"github.com/julienschmidt/httprouter"
)

type ServerConfig struct {
	Port    int
	Limiter LimiterConfig
}

/* Wires the catalog routes and the middleware chain into an http.Server. */
func NewServer(config ServerConfig, h *BookHandler, verifier auth.Verifier, logger log.Logger) *http.Server {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/ping", ping)
	router.HandlerFunc(http.MethodGet, "/books", h.listBooks)
	router.HandlerFunc(http.MethodPost, "/books", h.createBook)
	router.HandlerFunc(http.MethodGet, "/books/:isbn", h.getBookByIsbn)
	router.HandlerFunc(http.MethodPut, "/books/:isbn", h.updateBook)
	router.HandlerFunc(http.MethodDelete, "/books/:isbn", h.deleteBook)

	var handler http.Handler = router
	handler = authenticate(verifier, logger, handler)
	handler = rateLimit(config.Limiter, handler)
	handler = logRequest(logger, handler)
	handler = recoverPanic(logger, handler)

	server := http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return &server
}

/* Tests the http server connection.  */
func ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
