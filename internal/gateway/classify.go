package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/jackc/pgerrcode"
)

// PostgREST-level codes that do not come from PostgreSQL itself.
const (
	// codeNoRows is returned when a single-row request matches nothing.
	codeNoRows = "PGRST116"
	// codeJWTExpired is returned when the access token is no longer valid.
	codeJWTExpired = "PGRST301"
)

// errNoRows is an internal marker: callers translate it into a nil result.
var errNoRows = &ServiceError{Code: codeNoRows, Message: "no matching row"}

// platformError is the JSON error body the hosted data API returns.
type platformError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// classifyTransport wraps a transport-level failure (DNS, refused
// connection, timeout) as a retryable network ServiceError.
func classifyTransport(err error) *ServiceError {
	return &ServiceError{
		Code:           "NETWORK_ERROR",
		Message:        fmt.Sprintf("network request failed: %v", err),
		Hint:           "your changes are saved and will sync when you're back online",
		IsNetworkError: true,
	}
}

// classifyResponse maps a non-2xx platform response to a ServiceError.
// 2xx responses map to nil.
func classifyResponse(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var body platformError
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		text := strings.TrimSpace(string(resp.Body()))
		if text == "" {
			text = http.StatusText(resp.StatusCode())
		}
		return &ServiceError{
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode()),
			Message: text,
		}
	}

	switch body.Code {
	case codeNoRows:
		return errNoRows
	case codeJWTExpired:
		return &ServiceError{
			Code:    body.Code,
			Message: "your session has expired",
			Hint:    "sign in again to keep syncing",
		}
	case pgerrcode.UniqueViolation:
		return &ServiceError{
			Code:    body.Code,
			Message: "this entry already exists",
			Hint:    "today's mood was already recorded, the local copy was updated instead",
		}
	case pgerrcode.ForeignKeyViolation:
		return &ServiceError{
			Code:    body.Code,
			Message: "the entry references an account that no longer exists",
			Hint:    "check that you and your partner are still linked",
		}
	case pgerrcode.NotNullViolation:
		return &ServiceError{
			Code:    body.Code,
			Message: "the entry is missing a required field",
			Hint:    "update the app, this version sent incomplete data",
		}
	case pgerrcode.InsufficientPrivilege:
		return &ServiceError{
			Code:    body.Code,
			Message: "you don't have permission to write this entry",
			Hint:    "sign in again to refresh your access",
		}
	case pgerrcode.UndefinedTable:
		return &ServiceError{
			Code:    body.Code,
			Message: "the service schema is out of date",
			Hint:    "try again later, the service is being updated",
		}
	default:
		msg := body.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &ServiceError{
			Code:    body.Code,
			Message: fmt.Sprintf("database error: %s", msg),
			Hint:    body.Hint,
		}
	}
}
