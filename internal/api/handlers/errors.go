package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesdash/internal/analytics"
	"github.com/andresuchdata/salesdash/internal/domain"
	"github.com/andresuchdata/salesdash/internal/repository"
	"github.com/andresuchdata/salesdash/internal/service"
	"github.com/andresuchdata/salesdash/internal/sheets"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var te *sheets.TransportError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, analytics.ErrInvalidDimension),
		errors.Is(err, domain.ErrInvalidFiscalYear),
		errors.Is(err, domain.ErrInvalidFiscalMonth):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &te):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func errorResponse(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
