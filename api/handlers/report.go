// Package handlers serves the results of a finished analysis run over HTTP.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aria-lang/nanook-go/internal/readset"
	"github.com/aria-lang/nanook-go/internal/report"
)

// Reports serves a report.json file. The file is read again whenever its
// modification time changes, so a server can be left running across runs.
type Reports struct {
	path string

	mu      sync.Mutex
	report  *report.Report
	modTime time.Time
}

// NewReports returns a Reports serving the report at path.
func NewReports(path string) *Reports {
	return &Reports{path: path}
}

// Load returns the current report.
func (h *Reports) Load() (*report.Report, error) {
	fi, err := os.Stat(h.path)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.report != nil && fi.ModTime().Equal(h.modTime) {
		return h.report, nil
	}

	r, err := report.Load(h.path)
	if err != nil {
		return nil, err
	}
	h.report, h.modTime = r, fi.ModTime()
	return r, nil
}

// Mount registers the report endpoints on r.
func (h *Reports) Mount(r chi.Router) {
	r.Get("/report", h.ReportHandler)
	r.Get("/lengths", h.LengthsHandler)
	r.Route("/categories/{category}", func(r chi.Router) {
		r.Get("/", h.CategoryHandler)
		r.Get("/references/{id}", h.ReferenceHandler)
		r.Get("/motifs/{class}/{k}", h.MotifHandler)
	})
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

func (h *Reports) load(w http.ResponseWriter) (*report.Report, bool) {
	rep, err := h.Load()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no report available: %v", err)
		return nil, false
	}
	return rep, true
}

func (h *Reports) category(w http.ResponseWriter, r *http.Request) (*report.CategoryReport, bool) {
	rep, ok := h.load(w)
	if !ok {
		return nil, false
	}
	c, err := readset.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return nil, false
	}
	cr, ok := rep.Category(c)
	if !ok {
		writeError(w, http.StatusNotFound, "no results for %s reads", c)
		return nil, false
	}
	return cr, true
}

// ReportHandler returns the whole report.
func (h *Reports) ReportHandler(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// LengthsHandler returns the read length summary.
func (h *Reports) LengthsHandler(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep.Lengths)
}

// CategorySummary is a category report without per-reference detail.
type CategorySummary struct {
	Category              readset.Category   `json:"category"`
	Files                 int                `json:"files"`
	SkippedFiles          []string           `json:"skipped_files,omitempty"`
	Reads                 int                `json:"reads"`
	ReadsWithAlignment    int                `json:"reads_with_alignment"`
	ReadsWithoutAlignment int                `json:"reads_without_alignment"`
	PercentWithAlignment  float64            `json:"percent_with_alignment"`
	Errors                map[string]int     `json:"errors"`
	References            []ReferenceSummary `json:"references"`
}

// ReferenceSummary is one row of a category's reference table.
type ReferenceSummary struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Size                    int     `json:"size"`
	ReadsWithAlignment      int     `json:"reads_with_alignment"`
	LongestPerfectKmer      int     `json:"longest_perfect_kmer"`
	AlignedPercentIdentical float64 `json:"aligned_percent_identical"`
}

// CategoryHandler returns a summary of one read category.
func (h *Reports) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	cr, ok := h.category(w, r)
	if !ok {
		return
	}

	s := CategorySummary{
		Category:              cr.Category,
		Files:                 cr.Files,
		SkippedFiles:          cr.SkippedFiles,
		Reads:                 cr.Reads,
		ReadsWithAlignment:    cr.ReadsWithAlignment,
		ReadsWithoutAlignment: cr.ReadsWithoutAlignment,
		PercentWithAlignment:  cr.PercentWithAlignment,
		Errors: map[string]int{
			"insertion":    cr.Insertions,
			"deletion":     cr.Deletions,
			"substitution": cr.Substitutions,
		},
		References: make([]ReferenceSummary, 0, len(cr.References)),
	}
	for _, ref := range cr.References {
		s.References = append(s.References, ReferenceSummary{
			ID:                      ref.ID,
			Name:                    ref.Name,
			Size:                    ref.Size,
			ReadsWithAlignment:      ref.ReadsWithAlignment,
			LongestPerfectKmer:      ref.LongestPerfectKmer,
			AlignedPercentIdentical: ref.AlignedPercentIdentical,
		})
	}
	writeJSON(w, http.StatusOK, s)
}

// ReferenceHandler returns the full results of one reference.
func (h *Reports) ReferenceHandler(w http.ResponseWriter, r *http.Request) {
	cr, ok := h.category(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	ref, ok := cr.Reference(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown reference %q", id)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

// MotifHandler returns the ranked motifs of one error class and length.
func (h *Reports) MotifHandler(w http.ResponseWriter, r *http.Request) {
	cr, ok := h.category(w, r)
	if !ok {
		return
	}
	k, err := strconv.Atoi(chi.URLParam(r, "k"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "k must be an integer")
		return
	}
	class := chi.URLParam(r, "class")
	m, ok := cr.Motif(class, k)
	if !ok {
		writeError(w, http.StatusNotFound, "no %d-mer motifs for %q", k, class)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
