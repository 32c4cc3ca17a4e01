package errors

import (
	"errors"
	"fmt"
)

// AppError is the application-level error carried across layers.
//
// Code is a business error code (not an HTTP status) so clients can branch
// on the failure kind. Message is safe to show to users. Err holds the
// underlying cause and is never serialized to responses.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a business code and a user-facing message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap converts a low-level failure (database, redis, broker) into an
// internal AppError, hiding the cause from the client.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Business error codes.
// 4xxxx: client-side failures (validation, business rules).
// 5xxxx: server-side failures (database, cache, broker).
const (
	// system errors (50000-50099)
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002

	// auth errors (40100-40199)
	ErrCodeUnauthorized    = 40100
	ErrCodeInvalidToken    = 40101
	ErrCodeTokenExpired    = 40102
	ErrCodeInvalidPassword = 40103

	// resource errors (40400-40499)
	ErrCodeNotFound     = 40400
	ErrCodeBookNotFound = 40401
	ErrCodeSaleNotFound = 40402

	// business rule errors (40000-40099)
	ErrCodeBusinessError     = 40000
	ErrCodeInsufficientStock = 40001
	ErrCodeConflict          = 40002
	ErrCodeDuplicateEntry    = 40009

	// parameter errors (40900-40999)
	ErrCodeInvalidParams = 40900
	ErrCodeBindError     = 40901
	ErrCodeEmptyCart     = 40902
)

// Predefined errors shared across the application.
var (
	ErrInternal      = New(ErrCodeInternal, "Erro interno do servidor")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Erro no banco de dados")
	ErrRedisError    = New(ErrCodeRedisError, "Erro no serviço de cache")

	ErrUnauthorized    = New(ErrCodeUnauthorized, "Acesso não autorizado. Por favor, faça o login de administrador.")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "Token inválido")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token expirado, faça login novamente")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "Senha incorreta")

	ErrInvalidParams = New(ErrCodeInvalidParams, "Parâmetros inválidos")
	ErrBindError     = New(ErrCodeBindError, "Formato de requisição inválido")
)

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, wrapping unknown errors as
// internal so no raw detail leaks to clients.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Erro interno do servidor")
}
