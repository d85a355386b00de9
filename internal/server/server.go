// Package server exposes the computation engine over HTTP: upload a
// workbook, get the ISV result table back. It replaces the interactive
// surface of the original field tool with an API the presentation layer
// can call.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/iems-lab/isv-cli/internal/config"
	"github.com/iems-lab/isv-cli/internal/fetcher"
	"github.com/iems-lab/isv-cli/internal/isv"
	"github.com/iems-lab/isv-cli/internal/report"
)

// maxUploadBytes caps workbook uploads; field datasets are a few MB at
// most.
const maxUploadBytes = 32 << 20

// Server wraps the computation engine behind an HTTP surface.
type Server struct {
	cfg *config.Config
}

// New creates a Server using cfg for computation defaults.
func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/health", handleHealth)
	r.Post("/v1/isv", s.handleCompute)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// computeResponse is the JSON shape of a successful computation.
type computeResponse struct {
	RunID string      `json:"run_id"`
	Empty bool        `json:"empty"`
	Rows  []resultRow `json:"rows"`
}

// resultRow aliases the model row; declared locally so the wire schema
// is pinned here rather than implied by the model package.
type resultRow struct {
	Site      string  `json:"site"`
	Depth     string  `json:"depth"`
	CycleYear int     `json:"cycle_year"`
	Period    string  `json:"period"`
	NVer      int     `json:"nver"`
	DMax      int     `json:"dmax"`
	DVer      int     `json:"dver"`
	ISV       float64 `json:"isv"`
}

// handleCompute accepts a multipart workbook upload under "file", with
// optional "threshold" and "min_run_length" form overrides, and returns
// the result table as JSON, or as an XLSX workbook when format=xlsx.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "multipart upload required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	sites, err := fetcher.ReadWorkbookBytes(data)
	if err != nil {
		log.Warn("compute: rejected upload", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "not a usable workbook")
		return
	}

	isvCfg, err := s.requestConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runner := isv.NewRunner(isv.Config{
		Threshold:    isvCfg.Threshold,
		MinRunLength: isvCfg.MinRunLength,
		Depths:       isvCfg.Depths,
		DateColumn:   s.cfg.Input.DateColumn,
		Concurrency:  s.cfg.Batch.Concurrency,
	})
	rs, err := runner.Run(r.Context(), sites)
	if err != nil {
		log.Error("compute: batch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "computation failed")
		return
	}

	log.Info("compute: batch finished",
		zap.Int("sites", len(sites)),
		zap.Int("rows", len(rs.Rows)),
		zap.Bool("empty", rs.Empty()),
	)

	if r.FormValue("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="ISV_resultados.xlsx"`)
		if err := report.WriteXLSX(w, rs); err != nil {
			log.Error("compute: write workbook", zap.Error(err))
		}
		return
	}

	resp := computeResponse{RunID: runID, Empty: rs.Empty(), Rows: []resultRow{}}
	for _, row := range rs.Rows {
		resp.Rows = append(resp.Rows, resultRow{
			Site:      row.Site,
			Depth:     row.Depth,
			CycleYear: row.CycleYear,
			Period:    string(row.Period),
			NVer:      row.NVer,
			DMax:      row.DMax,
			DVer:      row.DVer,
			ISV:       row.ISV,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// requestConfig merges per-request overrides onto the configured defaults.
func (s *Server) requestConfig(r *http.Request) (config.ISVConfig, error) {
	cfg := s.cfg.ISV

	if v := r.FormValue("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, eris.New("invalid threshold parameter")
		}
		cfg.Threshold = f
	}
	if v := r.FormValue("min_run_length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, eris.New("invalid min_run_length parameter")
		}
		cfg.MinRunLength = n
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
