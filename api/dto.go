/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures of the conversion API. Values travel as text
  in every encoding the datatype layer knows, so clients never depend on
  the internal representation.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Types:
    TypeListResponse, TypeDTO

  Conversion:
    ConversionDTO, BatchConvertRequest, ConvertItem, BatchConvertResponse

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/MichalStehlikCz/common-sub000/datatype"
)

// =============================================================================
// TYPE DTOs
// =============================================================================

// TypeListResponse lists the registered type names.
type TypeListResponse struct {
	Types []string `json:"types"`
}

// TypeDTO describes a single registered type.
type TypeDTO struct {
	Name    string   `json:"name"`
	Formats []string `json:"formats"`
}

// =============================================================================
// CONVERSION DTOs
// =============================================================================

// ConversionDTO is one value rendered in all encodings.
type ConversionDTO struct {
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Iso      string `json:"iso"`
	Provys   string `json:"provys"`
	ZonedIso string `json:"zoned_iso,omitempty"`
}

// BatchConvertRequest converts several literals in one call.
type BatchConvertRequest struct {
	Items []ConvertItem `json:"items"`
}

// ConvertItem is one literal to convert. From defaults to iso.
type ConvertItem struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	From  string `json:"from,omitempty"`
}

// BatchConvertResponse holds one result per item, in request order.
type BatchConvertResponse struct {
	Results []BatchConvertResult `json:"results"`
}

// BatchConvertResult carries either a conversion or the error for one item.
type BatchConvertResult struct {
	Value *ConversionDTO `json:"value,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ParseErrorDetails locates a parse failure in the input.
type ParseErrorDetails struct {
	Input    string `json:"input"`
	Position int    `json:"position"`
	Kind     string `json:"kind"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toConversionDTO(name string, v datatype.Value, loc *time.Location) ConversionDTO {
	dto := ConversionDTO{
		Type:   name,
		Kind:   v.Kind().String(),
		Text:   v.String(),
		Iso:    v.ToIso(),
		Provys: v.ToProvysValue(),
	}
	if dt, ok := v.(datatype.DateTime); ok && dt.IsRegular() {
		dto.ZonedIso = dt.ToZonedIso(loc)
	}
	return dto
}
