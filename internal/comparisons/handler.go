package comparisons

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/formatdiff/pkg/handlers"
	"github.com/JaimeStill/formatdiff/pkg/routes"
)

// Handler provides HTTP endpoints for document comparison.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "comparisons"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for comparison endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/compare",
		Tags:    []string{"Comparisons"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Compare, OpenAPI: docs.Compare},
			{Method: "POST", Pattern: "/template", Handler: h.CompareTemplate, OpenAPI: docs.CompareTemplate},
			{Method: "POST", Pattern: "/parse", Handler: h.Parse, OpenAPI: docs.Parse},
		},
	}
}

// Compare diffs the multipart files file1 (left) and file2 (right).
// With ?only_diffs=true the report lists changed positions only.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	left, err := formUpload(r, "file1")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	right, err := formUpload(r, "file2")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	report, err := h.sys.Compare(r.Context(), left, right)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.shape(r, report))
}

// CompareTemplate diffs the multipart file against the template named by the
// optional template_id field, or the default template.
func (h *Handler) CompareTemplate(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	var id *uuid.UUID
	if v := r.FormValue("template_id"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid template_id: %w", err))
			return
		}
		id = &parsed
	}

	upload, err := formUpload(r, "file")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	report, err := h.sys.CompareTemplate(r.Context(), id, upload)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.shape(r, report))
}

// Parse returns the paragraph records extracted from the multipart file.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	upload, err := formUpload(r, "file")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	doc, err := h.sys.Parse(r.Context(), upload)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return false
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidFile, err))
		return false
	}
	return true
}

func (h *Handler) shape(r *http.Request, report *Report) *Report {
	only, _ := strconv.ParseBool(r.URL.Query().Get("only_diffs"))
	if !only || report.Paragraphs == nil {
		return report
	}

	result := *report.Paragraphs
	result.Entries = result.Changes()

	shaped := *report
	shaped.Paragraphs = &result
	return &shaped
}

func formUpload(r *http.Request, field string) (Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: missing %s", ErrInvalidFile, field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: read %s: %w", ErrInvalidFile, field, err)
	}

	return Upload{Filename: header.Filename, Data: data}, nil
}
