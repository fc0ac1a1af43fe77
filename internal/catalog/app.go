package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

const (
	BasePath = "/api/products"

	msgNotFound = "Product not found"
	msgInvalid  = "Invalid product data"
	msgInternal = "Internal server error"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

// Routes builds the product API plus health probes. writeMW wraps only the
// mutating endpoints.
func (s *Server) Routes(writeMW ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Route(BasePath, func(pr chi.Router) {
		pr.Get("/", s.list)
		pr.Get("/{id}", s.get)

		pr.Group(func(wr chi.Router) {
			wr.Use(writeMW...)
			wr.Post("/", s.create)
			wr.Put("/{id}", s.update)
			wr.Delete("/{id}", s.delete)
		})
	})

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListAll(r.Context())
	if err != nil {
		s.internalError(w, r, "list products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	p, err := s.Store.FindByID(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
	case err != nil:
		s.internalError(w, r, "get product failed", err, zap.Int("id", id))
	default:
		kit.WriteJSON(w, http.StatusOK, p)
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeProduct(r)
	if err != nil || !in.Valid() {
		kit.WriteError(w, r, http.StatusBadRequest, msgInvalid, nil)
		return
	}

	p, err := s.Store.Insert(r.Context(), in)
	switch {
	case errors.Is(err, ErrInvalidProduct):
		kit.WriteError(w, r, http.StatusBadRequest, msgInvalid, nil)
		return
	case err != nil:
		s.internalError(w, r, "create product failed", err)
		return
	}

	s.logger().Debug("product created", zap.Int("id", p.ID))
	w.Header().Set("Location", BasePath+"/"+strconv.Itoa(p.ID))
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	// a blank name is left to Replace so an unknown id still answers 404
	in, err := decodeProduct(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, msgInvalid, nil)
		return
	}

	err = s.Store.Replace(r.Context(), id, in)
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
	case errors.Is(err, ErrInvalidProduct):
		kit.WriteError(w, r, http.StatusBadRequest, msgInvalid, nil)
	case err != nil:
		s.internalError(w, r, "update product failed", err, zap.Int("id", id))
	default:
		s.logger().Debug("product updated", zap.Int("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	err := s.Store.Remove(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
	case err != nil:
		s.internalError(w, r, "delete product failed", err, zap.Int("id", id))
	default:
		s.logger().Debug("product deleted", zap.Int("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	s.logger().Error(msg, append(fields, zap.Error(err))...)
	kit.WriteError(w, r, http.StatusInternalServerError, msgInternal, nil)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// productID reads {id}. Anything that is not an integer cannot name a stored
// product, so callers answer it like a missing id.
func productID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeProduct(r *http.Request) (Product, error) {
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)

	var p Product
	if err := dec.Decode(&p); err != nil {
		return Product{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Product{}, errors.New("extra data after json object")
	}

	return p, nil
}
