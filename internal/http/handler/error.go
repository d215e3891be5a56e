package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/http/middleware"
	"blogapi/internal/service"
	"blogapi/internal/validator"
)

const (
	statusSuccess = "Success"
	statusError   = "Error"
)

// Error codes carried in the "error" field of the envelope.
const (
	codeInvalidInput       = "INVALID_INPUT"
	codeInvalidID          = "INVALID_ID"
	codeNotFound           = "NOT_FOUND"
	codeStorage            = "STORAGE_ERROR"
	codeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	codeInternal           = "INTERNAL_ERROR"
	codeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

const (
	msgInvalidInput     = "Datos no válidos"
	msgInvalidID        = "El id del articulo no es válido"
	msgArticleNotFound  = "No existe el articulo"
	msgNoArticles       = "No hay articulos que mostrar"
	msgImageNotFound    = "La imagen no existe"
	msgStorage          = "Error al guardar los datos"
	msgCleanupFailed    = "El articulo se guardó pero no se pudo eliminar la imagen anterior"
	msgDeleteCleanup    = "El articulo se borró pero no se pudo eliminar su imagen"
	msgInternal         = "Error interno del servidor"
	msgRouteNotFound    = "Recurso no encontrado"
	msgMethodNotAllowed = "Método no permitido"
	msgBadRequest       = "Petición no válida"
	msgUnavailable      = "Servicio no disponible"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Status    string `json:"status"`
	Message   string `json:"mensaje"`
	Code      string `json:"error"`
	RequestID string `json:"request_id"`
	// Article is set on partial failures, where the write itself was committed.
	Article any `json:"articulo,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "STORAGE_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writePartial(c, status, code, message, nil)
}

// writePartial is writeError for a committed write whose follow-up step failed.
func writePartial(c *fiber.Ctx, status int, code, message string, article any) error {
	return c.Status(status).JSON(errorPayload{
		Status:    statusError,
		Message:   message,
		Code:      code,
		RequestID: middleware.RequestIDFromCtx(c),
		Article:   article,
	})
}

// writeServiceError maps service error classes to status codes.
// notFound is the message used for ErrNotFound, which differs between articles, listings and images.
func writeServiceError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case service.ErrInvalidInput.Has(err):
		return writeError(c, fiber.StatusBadRequest, codeInvalidInput, invalidInputMessage(err))
	case service.ErrNotFound.Has(err):
		return writeError(c, fiber.StatusNotFound, codeNotFound, notFound)
	case service.ErrStorage.Has(err):
		return writeError(c, fiber.StatusInternalServerError, codeStorage, msgStorage)
	default:
		return writeError(c, fiber.StatusInternalServerError, codeInternal, msgInternal)
	}
}

func invalidInputMessage(err error) string {
	var fe *validator.FieldError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	var ie *validator.ImageError
	if errors.As(err, &ie) {
		return ie.Reason
	}
	return msgInvalidInput
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, codeInvalidInput, msgBadRequest)
		case fiber.StatusNotFound:
			return writeError(c, status, codeNotFound, msgRouteNotFound)
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, codeMethodNotAllowed, msgMethodNotAllowed)
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, codeInvalidInput, "La petición es demasiado grande")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, codeServiceUnavailable, msgUnavailable)
		default:
			return writeError(c, status, codeInternal, msgInternal)
		}
	}
}
