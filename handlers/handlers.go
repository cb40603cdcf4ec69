// Package handlers implements the HTTP surface of the extraction
// service: a single multipart endpoint that recovers an embedded payload
// from an ordered set of previously-watermarked carrier files, plus a
// health check.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/halfwave/puffextract/internal/bitselection"
	"github.com/halfwave/puffextract/internal/carrier"
	"github.com/halfwave/puffextract/internal/carriertype"
	"github.com/halfwave/puffextract/internal/extract"
	"github.com/halfwave/puffextract/internal/passwords"
	"github.com/halfwave/puffextract/internal/wavparser"
	"github.com/halfwave/puffextract/models"
	"github.com/halfwave/puffextract/service"
)

// Handlers holds the extraction service dependency.
type Handlers struct {
	extractionService service.ExtractionService
}

// NewHandlers creates a new handlers instance with its service
// dependency injected.
func NewHandlers(extractionService service.ExtractionService) *Handlers {
	return &Handlers{extractionService: extractionService}
}

// HealthHandler handles the health check endpoint
//
//	@Summary		Health Check
//	@Description	Returns the health status of the extraction service
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	models.HealthResponse	"Service is healthy"
//	@Router			/health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "healthy"})
}

// ExtractHandler extracts the hidden payload (or its decoy) previously
// embedded across an ordered sequence of carrier files.
//
//	@Summary		Extract a hidden payload from a sequence of carriers
//	@Description	Parses each carrier in upload order, reverses the per-carrier whitening and key-chain derivation, decrypts the data and decoy streams, and returns whichever one parses as a CRC-verified embedded file.
//	@Tags			Extraction
//	@Accept			multipart/form-data
//	@Produce		application/octet-stream
//	@Produce		json
//	@Param			carriers		formData	file	true	"Ordered carrier files (repeat the field once per carrier, in processing order)"
//	@Param			password_a		formData	string	true	"Password A (required, used by the cipher cascade)"
//	@Param			password_b		formData	string	false	"Password B (defaults to password A)"
//	@Param			password_c		formData	string	false	"Password C (defaults to password A, used by the scrambler)"
//	@Param			bit_selection	formData	string	false	"Bit density: minimum, very_low, low, medium (default), high, very_high, maximum"
//	@Success		200				{file}		binary	"Recovered payload"
//	@Header			200				{string}	X-Puffextract-Filename	"Recovered payload's embedded filename"
//	@Header			200				{string}	X-Puffextract-From-Decoy	"true if the payload came from the decoy stream rather than the data stream"
//	@Failure		400				{object}	models.ErrorResponse	"Bad request: missing carriers, bad password, or unrecognized carrier type"
//	@Failure		422				{object}	models.ErrorResponse	"Carriers parsed but no CRC-verified payload could be recovered with the given passwords"
//	@Failure		500				{object}	models.ErrorResponse	"Internal processing error"
//	@Router			/extract [post]
func (h *Handlers) ExtractHandler(c *gin.Context) {
	startTime := time.Now()
	requestID := c.GetString("trace_id")

	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("[ERROR] [%s] ExtractHandler: not a multipart form: %v", requestID, err)
		sendError(c, http.StatusBadRequest, "INVALID_FORM", "Request must be a multipart/form-data upload")
		return
	}

	fileHeaders := form.File["carriers"]
	if len(fileHeaders) == 0 {
		sendError(c, http.StatusBadRequest, "NO_CARRIERS", models.ErrNoCarriers.Error())
		return
	}

	log.Printf("[INFO] [%s] ExtractHandler: extracting from %d carrier(s) from %s", requestID, len(fileHeaders), c.ClientIP())

	carriers := make([]service.CarrierUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", "Failed to open uploaded carrier "+fh.Filename)
			return
		}
		defer f.Close()
		carriers = append(carriers, service.CarrierUpload{Filename: fh.Filename, File: f})
	}

	passwordA := c.PostForm("password_a")
	if passwordA == "" {
		sendError(c, http.StatusBadRequest, "MISSING_PASSWORD_A", models.ErrMissingPasswordA.Error())
		return
	}

	pwFields := service.PasswordFields{A: passwordA}
	if b, ok := c.GetPostForm("password_b"); ok {
		pwFields.B = &b
	}
	if cc, ok := c.GetPostForm("password_c"); ok {
		pwFields.C = &cc
	}
	if pwFields.C != nil && pwFields.B == nil {
		sendError(c, http.StatusBadRequest, "PASSWORD_C_WITHOUT_B", models.ErrPasswordCWithoutB.Error())
		return
	}

	bitLevel := c.DefaultPostForm("bit_selection", "medium")
	if _, err := bitselection.Parse(bitLevel); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_BIT_LEVEL", models.ErrInvalidBitLevel.Error())
		return
	}

	result, warnings, err := h.extractionService.Extract(c.Request.Context(), carriers, bitLevel, pwFields)
	for _, w := range warnings {
		log.Printf("[WARN] [%s] ExtractHandler: %s", requestID, w)
	}
	if err != nil {
		log.Printf("[ERROR] [%s] ExtractHandler: extraction failed: %v", requestID, err)
		status, code := classifyError(err)
		sendError(c, status, code, err.Error())
		return
	}

	processingTime := time.Since(startTime).Milliseconds()
	log.Printf("[INFO] [%s] ExtractHandler: recovered %q (%d bytes, from_decoy=%t) in %dms",
		requestID, result.Filename, len(result.Content), result.FromDecoy, processingTime)

	c.Header("X-Puffextract-Filename", result.Filename)
	c.Header("X-Puffextract-From-Decoy", strconv.FormatBool(result.FromDecoy))
	c.Header("X-Processing-Time", strconv.FormatInt(processingTime, 10))

	// Callers that want the payload's metadata without the raw bytes
	// (e.g. to decide where to store it) can ask for JSON instead.
	if c.NegotiateFormat("application/octet-stream", gin.MIMEJSON) == gin.MIMEJSON && c.GetHeader("Accept") != "" {
		c.JSON(http.StatusOK, models.ExtractResponse{
			Success:   true,
			Filename:  result.Filename,
			SizeBytes: len(result.Content),
			FromDecoy: result.FromDecoy,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/octet-stream", result.Content)
}

// classifyError maps a pipeline error to the HTTP status and machine code
// the API reports it under. Unrecognized-carrier and password failures
// are the caller's fault (400); a clean parse that still can't produce a
// CRC-verified file is a 422 (request was well-formed, extraction simply
// didn't recover anything); everything else is a 500.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, carriertype.ErrUnknownFiletype):
		return http.StatusBadRequest, "UNKNOWN_FILETYPE"
	case errors.Is(err, passwords.ErrPasswordTooLong):
		return http.StatusBadRequest, "PASSWORD_TOO_LONG"
	case errors.Is(err, passwords.ErrContainsNulByte):
		return http.StatusBadRequest, "PASSWORD_CONTAINS_NUL"
	case errors.Is(err, carrier.ErrCarrierTooSmall):
		return http.StatusBadRequest, "CARRIER_TOO_SMALL"
	case errors.Is(err, wavparser.ErrInvalidFormat):
		return http.StatusBadRequest, "INVALID_CARRIER_FORMAT"
	case errors.Is(err, extract.ErrNoFileFound):
		return http.StatusUnprocessableEntity, "NO_FILE_FOUND"
	default:
		return http.StatusInternalServerError, "PROCESSING_ERROR"
	}
}

// sendError sends a standardized error response.
func sendError(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Message: message,
			Details: map[string]interface{}{"code": code},
		},
	})
}
