package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/charts"
	"github.com/Bgoodwin24/insightforge/internal/dataset"
	"github.com/Bgoodwin24/insightforge/internal/dispatcher"
	"github.com/Bgoodwin24/insightforge/internal/fetchers"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// maxUploadBytes bounds dataset uploads
const maxUploadBytes = 32 << 20

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, hasDataset := s.Datasets.Active()
	health := map[string]interface{}{
		"status":    "healthy",
		"version":   s.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"checks": map[string]interface{}{
			"dataset": hasDataset,
			"mockup":  s.MockService != nil,
		},
	}
	writeJSON(w, http.StatusOK, health)
}

// HandleMethods lists the catalog grouped for the method selector
func (s *Server) HandleMethods(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		catalog.Method
		Archetype models.Archetype `json:"archetype"`
	}
	var methods []entry
	for _, m := range catalog.Methods() {
		archetype, _ := catalog.ResolveArchetype(m.Name)
		methods = append(methods, entry{Method: m, Archetype: archetype})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"groups":     catalog.Groups(),
		"methods":    methods,
		"subMethods": catalog.SubMethods,
	})
}

// HandleListDatasets lists the loaded datasets
func (s *Server) HandleListDatasets(w http.ResponseWriter, r *http.Request) {
	list := s.Datasets.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"datasets": list,
		"count":    len(list),
	})
}

// HandleUploadDataset loads a CSV or XLSX file sent as the multipart field
// "file". The upload becomes active when ?activate=true or when it is the
// first dataset.
func (s *Server) HandleUploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	ds, err := dataset.LoadReader(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Datasets.Add(ds)
	if r.URL.Query().Get("activate") == "true" {
		if err := s.Datasets.SetActive(ds.ID); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	s.log.Info("dataset loaded", map[string]interface{}{
		"id":      ds.ID,
		"name":    ds.Name,
		"columns": len(ds.Columns),
		"rows":    len(ds.Rows),
	})
	active, _ := s.Datasets.Active()
	writeJSON(w, http.StatusCreated, dataset.Summary{
		ID:      ds.ID,
		Name:    ds.Name,
		Columns: ds.Columns,
		Rows:    len(ds.Rows),
		Active:  active.ID == ds.ID,
	})
}

// HandleActivateDataset selects the dataset analyses run against
func (s *Server) HandleActivateDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Datasets.SetActive(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnalysisRequest is the body of POST /analysis. DatasetID defaults to the
// active dataset.
type AnalysisRequest struct {
	Group     string `json:"group"`
	Method    string `json:"method"`
	SubMethod string `json:"sub_method"`
	FillValue string `json:"fill_value"`
	DatasetID string `json:"dataset_id"`
}

// HandleAnalysis runs one analysis and returns the chart state it produced
func (s *Server) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Method == "" {
		writeError(w, http.StatusBadRequest, "method is required")
		return
	}

	var ds models.Dataset
	var ok bool
	if req.DatasetID != "" {
		ds, ok = s.Datasets.Get(req.DatasetID)
	} else {
		ds, ok = s.Datasets.Active()
	}
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, dispatcher.ErrMissingPrerequisite.Error()+": no dataset loaded")
		return
	}

	state, err := s.Dispatcher.Run(r.Context(), dispatcher.Request{
		Group:     req.Group,
		Method:    req.Method,
		SubMethod: req.SubMethod,
		FillValue: req.FillValue,
		Dataset:   ds,
	})
	if err != nil {
		status, body := analysisError(err)
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// analysisError maps a dispatcher failure to a response
func analysisError(err error) (int, map[string]interface{}) {
	body := map[string]interface{}{"error": err.Error()}
	switch {
	case dispatcher.IsStale(err):
		return http.StatusConflict, body
	case errors.Is(err, dispatcher.ErrUnknownMethod), errors.Is(err, dispatcher.ErrUnsupportedChart):
		return http.StatusBadRequest, body
	case errors.Is(err, dispatcher.ErrMissingPrerequisite):
		return http.StatusUnprocessableEntity, body
	}
	if upstream, ok := fetchers.AsUpstream(err); ok {
		body["upstream"] = map[string]interface{}{
			"status":  upstream.Status,
			"message": upstream.Message,
		}
	}
	return http.StatusBadGateway, body
}

// HandleChart returns the displayed chart state
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	state, ok := s.Dispatcher.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis has been run")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleChartReport serves the displayed chart as a report page
func (s *Server) HandleChartReport(w http.ResponseWriter, r *http.Request) {
	state, ok := s.Dispatcher.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis has been run")
		return
	}
	page, err := s.Generator.GenerateHTML(state)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", GetContentType(".html"))
	w.Write([]byte(page))
}

// HandleChartPage serves the displayed chart as a go-echarts page
func (s *Server) HandleChartPage(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, charts.FormatHTML, ".html")
}

// HandleChartPNG serves the displayed chart as an image
func (s *Server) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, charts.FormatPNG, ".png")
}

func (s *Server) renderChart(w http.ResponseWriter, format charts.Format, ext string) {
	state, ok := s.Dispatcher.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis has been run")
		return
	}
	var buf bytes.Buffer
	if err := s.Charts.Render(&buf, state, format); err != nil {
		s.log.Error("chart rendering failed", err, map[string]interface{}{"method": state.Method})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", GetContentType(ext))
	w.Write(buf.Bytes())
}
