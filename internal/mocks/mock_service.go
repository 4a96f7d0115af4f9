// Package mocks serves a local stand-in for the analytics service. It
// answers the same routes with the same response shapes, computed over
// datasets held in memory.
package mocks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/logger"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// DatasetSource resolves dataset ids
type DatasetSource interface {
	Get(id string) (models.Dataset, bool)
}

// analysis computes one method's response over a dataset
type analysis func(ds models.Dataset, q url.Values) (interface{}, error)

// errBadRequest marks failures caused by the request rather than the data
var errBadRequest = errors.New("bad request")

// MockService implements the analytics service routes
type MockService struct {
	datasets DatasetSource
	methods  map[string]analysis
	log      *logger.Logger
}

// NewMockService creates a mock service over the given datasets
func NewMockService(datasets DatasetSource) *MockService {
	m := &MockService{
		datasets: datasets,
		log:      logger.WithComponent("mock-analytics"),
	}
	m.methods = m.registry()
	return m
}

// Handler returns a router serving GET /analytics/{group}/{method}
func (m *MockService) Handler() http.Handler {
	r := chi.NewRouter()
	m.Register(r)
	return r
}

// Register adds the analytics route to an existing router
func (m *MockService) Register(r chi.Router) {
	r.Get("/analytics/{group}/{method}", m.handleAnalysis)
}

// Routes returns the method identifiers the mock can answer
func (m *MockService) Routes() []string {
	var out []string
	for _, method := range catalog.Methods() {
		if _, ok := m.methods[method.Name]; ok {
			out = append(out, method.Group+"/"+method.Name)
		}
	}
	return out
}

func (m *MockService) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	name := chi.URLParam(r, "method")
	q := r.URL.Query()

	method, ok := catalog.Lookup(name)
	fn, served := m.methods[name]
	if !ok || !served || method.Group != group {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown analysis %s/%s", group, name))
		return
	}

	ds, ok := m.datasets.Get(q.Get("dataset_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Invalid dataset ID")
		return
	}

	result, err := fn(ds, q)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errBadRequest) {
			status = http.StatusBadRequest
		}
		m.log.Warn("mock analysis failed", map[string]interface{}{
			"method": name,
			"status": status,
			"error":  err.Error(),
		})
		writeError(w, status, errorText(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// errorText drops the errBadRequest prefix from user-facing messages
func errorText(err error) string {
	var br badRequest
	if errors.As(err, &br) {
		return br.msg
	}
	return err.Error()
}

type badRequest struct{ msg string }

func (b badRequest) Error() string { return b.msg }
func (b badRequest) Unwrap() error { return errBadRequest }

func invalid(format string, args ...interface{}) error {
	return badRequest{msg: fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
