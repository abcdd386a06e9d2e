package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	analyticsdomain "github.com/omvsuite/omvadmin/internal/analytics/domain"
	customerdomain "github.com/omvsuite/omvadmin/internal/customer/domain"
	notifdomain "github.com/omvsuite/omvadmin/internal/notification/domain"
	plandomain "github.com/omvsuite/omvadmin/internal/plan/domain"
	"github.com/omvsuite/omvadmin/internal/session"
	simdomain "github.com/omvsuite/omvadmin/internal/sim/domain"
	ticketdomain "github.com/omvsuite/omvadmin/internal/ticket/domain"
	txndomain "github.com/omvsuite/omvadmin/internal/transaction/domain"
	userdomain "github.com/omvsuite/omvadmin/internal/user/domain"
	warehousedomain "github.com/omvsuite/omvadmin/internal/warehouse/domain"
	webhookdomain "github.com/omvsuite/omvadmin/internal/webhooklog/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, userdomain.ErrInvalidName),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrInvalidID):
		return true
	case errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidPhone),
		errors.Is(err, customerdomain.ErrInvalidStatus),
		errors.Is(err, customerdomain.ErrInvalidID):
		return true
	case errors.Is(err, simdomain.ErrInvalidICCID),
		errors.Is(err, simdomain.ErrInvalidMSISDN),
		errors.Is(err, simdomain.ErrInvalidOperator),
		errors.Is(err, simdomain.ErrInvalidStatus),
		errors.Is(err, simdomain.ErrInvalidSimID):
		return true
	case errors.Is(err, plandomain.ErrInvalidName),
		errors.Is(err, plandomain.ErrInvalidType),
		errors.Is(err, plandomain.ErrInvalidPrice),
		errors.Is(err, plandomain.ErrInvalidPlanID):
		return true
	case errors.Is(err, warehousedomain.ErrInvalidName),
		errors.Is(err, warehousedomain.ErrInvalidWarehouseID):
		return true
	case errors.Is(err, txndomain.ErrInvalidAmount),
		errors.Is(err, txndomain.ErrInvalidCustomerID),
		errors.Is(err, txndomain.ErrInvalidTransactionID),
		errors.Is(err, txndomain.ErrSameCustomer):
		return true
	case errors.Is(err, ticketdomain.ErrInvalidTitle),
		errors.Is(err, ticketdomain.ErrInvalidCategory),
		errors.Is(err, ticketdomain.ErrInvalidPriority),
		errors.Is(err, ticketdomain.ErrInvalidStatus),
		errors.Is(err, ticketdomain.ErrInvalidTicketID),
		errors.Is(err, ticketdomain.ErrInvalidComment):
		return true
	case errors.Is(err, analyticsdomain.ErrInvalidUserID),
		errors.Is(err, analyticsdomain.ErrInvalidActivity),
		errors.Is(err, analyticsdomain.ErrInvalidWindow):
		return true
	case errors.Is(err, notifdomain.ErrInvalidUserID),
		errors.Is(err, notifdomain.ErrInvalidTitle):
		return true
	case errors.Is(err, session.ErrInvalidUserID):
		return true
	case errors.Is(err, webhookdomain.ErrInvalidEndpoint),
		errors.Is(err, webhookdomain.ErrInvalidEvent),
		errors.Is(err, webhookdomain.ErrInvalidStatus):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, userdomain.ErrEmailTaken),
		errors.Is(err, simdomain.ErrICCIDTaken),
		errors.Is(err, simdomain.ErrNotAvailable),
		errors.Is(err, simdomain.ErrNotActive),
		errors.Is(err, simdomain.ErrNotSuspended),
		errors.Is(err, txndomain.ErrSimNotAvailable),
		errors.Is(err, txndomain.ErrSimNotActive):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, simdomain.ErrNotFound),
		errors.Is(err, plandomain.ErrNotFound),
		errors.Is(err, warehousedomain.ErrNotFound),
		errors.Is(err, txndomain.ErrNotFound),
		errors.Is(err, txndomain.ErrCustomerNotFound),
		errors.Is(err, txndomain.ErrSimNotFound),
		errors.Is(err, ticketdomain.ErrNotFound),
		errors.Is(err, notifdomain.ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
