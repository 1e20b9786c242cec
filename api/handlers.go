/*
handlers.go - HTTP API handlers for the datatype conversion service

PURPOSE:
  Exposes the datatype registry via REST API. Handles HTTP request/response
  and JSON serialization, and delegates parsing and formatting to the
  datatype package.

ENDPOINTS:
  Types:
    GET    /api/types                   List registered type names
    GET    /api/types/{name}            Describe one type

  Conversion:
    GET    /api/types/{name}/convert    Convert ?value= from ?from=iso|provys
    POST   /api/convert                 Convert a batch of literals

REQUEST FLOW:
  1. Resolve the type by name
  2. Parse the literal in the requested encoding
  3. Render the value in every encoding
  4. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed literals, out-of-range values, unknown formats
  - 404: Unknown type
  - 500: Internal errors
  The code field carries datatype.Code(err), e.g. parse_grammar or range.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MichalStehlikCz/common-sub000/datatype"
	"github.com/MichalStehlikCz/common-sub000/strparser"
	"github.com/go-chi/chi/v5"
)

const (
	FormatIso    = "iso"
	FormatProvys = "provys"

	maxBatchItems = 1000
)

var (
	errUnknownType   = errors.New("unknown type")
	errUnknownFormat = errors.New("unknown format")
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	logger   *slog.Logger
	location *time.Location
}

// NewHandler creates a handler. Zone-aware ISO date times are converted to
// loc; a nil logger discards output.
func NewHandler(logger *slog.Logger, loc *time.Location) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if loc == nil {
		loc = time.Local
	}
	return &Handler{logger: logger, location: loc}
}

// =============================================================================
// TYPE HANDLERS
// =============================================================================

// ListTypes returns all registered type names.
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TypeListResponse{Types: datatype.ListTypes()})
}

// GetType describes a single type.
func (h *Handler) GetType(w http.ResponseWriter, r *http.Request) {
	info, ok := datatype.LookupType(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "Type not found", "unknown_type", nil)
		return
	}

	formats := []string{}
	if info.ParseIso != nil {
		formats = append(formats, FormatIso)
	}
	if info.ParseProvys != nil {
		formats = append(formats, FormatProvys)
	}
	writeJSON(w, http.StatusOK, TypeDTO{Name: info.Name, Formats: formats})
}

// =============================================================================
// CONVERSION HANDLERS
// =============================================================================

// Convert parses ?value= in the ?from= encoding and renders it in all
// encodings.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("value") {
		writeError(w, http.StatusBadRequest, "Missing value parameter", "missing_value", nil)
		return
	}

	dto, err := h.ConvertValue(chi.URLParam(r, "name"), q.Get("value"), q.Get("from"))
	if err != nil {
		h.logger.Debug("conversion failed",
			"type", chi.URLParam(r, "name"),
			"value", q.Get("value"),
			"error", err)
		writeConversionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// BatchConvert converts every item of the request body independently; a
// failing item does not fail the batch.
func (h *Handler) BatchConvert(w http.ResponseWriter, r *http.Request) {
	var req BatchConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_body", err)
		return
	}
	if len(req.Items) > maxBatchItems {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("At most %d items per batch", maxBatchItems), "batch_too_large", nil)
		return
	}

	results := make([]BatchConvertResult, len(req.Items))
	failed := 0
	for i, item := range req.Items {
		dto, err := h.ConvertValue(item.Type, item.Value, item.From)
		if err != nil {
			_, resp := conversionError(err)
			results[i] = BatchConvertResult{Error: &resp}
			failed++
			continue
		}
		results[i] = BatchConvertResult{Value: &dto}
	}

	h.logger.Info("batch converted", "items", len(req.Items), "failed", failed)
	writeJSON(w, http.StatusOK, BatchConvertResponse{Results: results})
}

// ConvertValue parses value of the named type in the from encoding (iso when
// empty) and renders it in all encodings.
func (h *Handler) ConvertValue(name, value, from string) (ConversionDTO, error) {
	info, ok := datatype.LookupType(name)
	if !ok {
		return ConversionDTO{}, fmt.Errorf("%w: %s", errUnknownType, name)
	}

	var (
		v   datatype.Value
		err error
	)
	switch strings.ToLower(from) {
	case "", FormatIso:
		v, err = h.parseIso(info, value)
	case FormatProvys:
		if info.ParseProvys == nil {
			return ConversionDTO{}, fmt.Errorf("%w: %s has no provys format", errUnknownFormat, info.Name)
		}
		v, err = info.ParseProvys(value)
	default:
		return ConversionDTO{}, fmt.Errorf("%w: %q", errUnknownFormat, from)
	}
	if err != nil {
		return ConversionDTO{}, err
	}
	return toConversionDTO(info.Name, v, h.location), nil
}

// parseIso uses the handler's location for date times and times so that
// zoned input is converted to the configured zone rather than the process
// zone.
func (h *Handler) parseIso(info datatype.TypeInfo, value string) (datatype.Value, error) {
	switch info.Name {
	case "DATETIME":
		dt, err := datatype.ParseIsoDateTimeIn(value, h.location)
		if err != nil {
			return nil, err
		}
		return dt, nil
	case "TIMES":
		t, err := datatype.ParseIsoTimeSAt(value, datatype.TodayIn(h.location), h.location)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	if info.ParseIso == nil {
		return nil, fmt.Errorf("%w: %s has no iso format", errUnknownFormat, info.Name)
	}
	return info.ParseIso(value)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message, code string, err error) {
	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeConversionError(w http.ResponseWriter, err error) {
	status, resp := conversionError(err)
	writeJSON(w, status, resp)
}

// conversionError maps an error to its HTTP status and response body.
func conversionError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, errUnknownType):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "unknown_type"}
	case errors.Is(err, errUnknownFormat):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "unknown_format"}
	case datatype.IsClientError(err):
		resp := ErrorResponse{Error: err.Error(), Code: datatype.Code(err)}
		var perr *strparser.Error
		if errors.As(err, &perr) {
			resp.Details = ParseErrorDetails{Input: perr.Text, Position: perr.Pos, Kind: perr.Kind.Error()}
		}
		return http.StatusBadRequest, resp
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "Internal error", Code: datatype.Code(err), Details: err.Error()}
}
