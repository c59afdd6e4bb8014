package services

import "net/http"

// ErrorKind is the closed taxonomy of failures the session/order core can
// produce. Every mutating operation rolls its transaction back on any of
// these; nothing is retried inside the core.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindConflict
	KindInvalidCredentials
	KindUnauthorized
	KindInsufficientStock
	KindUnavailable
	KindInactiveRestaurant
	KindValidation
)

// Error is the typed failure surfaced by the service layer. Controllers map
// Kind to an HTTP status with HTTPStatus.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindInsufficientStock, KindUnavailable:
		return http.StatusUnprocessableEntity
	case KindInactiveRestaurant:
		return http.StatusPaymentRequired
	case KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func invalidCredentials(msg string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: msg}
}

func unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func insufficientStock(msg string) *Error {
	return &Error{Kind: KindInsufficientStock, Message: msg}
}

func unavailable(msg string) *Error {
	return &Error{Kind: KindUnavailable, Message: msg}
}

func inactiveRestaurant(msg string) *Error {
	return &Error{Kind: KindInactiveRestaurant, Message: msg}
}

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}
