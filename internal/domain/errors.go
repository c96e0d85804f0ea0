package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInUse        = errors.New("recurso en uso")
	ErrLastAdmin    = errors.New("debe existir al menos un administrador activo")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("error de almacenamiento")
)

// Kind clasifica un error para que la capa HTTP elija el status.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindForbidden
	KindUnauthorized
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindStorage:
		return "storage"
	default:
		return "unexpected"
	}
}

// Error es el error tipado que devuelven los casos de uso.
// Message es apto para el cliente; Fields lleva errores por campo en validaciones.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound construye un error KindNotFound que envuelve ErrNotFound.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), Err: ErrNotFound}
}

// Conflict construye un error KindConflict envolviendo el sentinel indicado.
func Conflict(sentinel error, format string, args ...any) *Error {
	if sentinel == nil {
		sentinel = ErrConflict
	}
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: sentinel}
}

// Validation construye un error KindValidation con errores por campo.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields, Err: ErrInvalidInput}
}

// Unauthorized construye un error KindUnauthorized.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: ErrUnauthorized}
}

// Storage envuelve un fallo de persistencia.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op, Err: errors.Join(ErrStorage, err)}
}

// KindOf devuelve el Kind de err. Errores sin tipo se clasifican por sentinel.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnexpected
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInUse), errors.Is(err, ErrLastAdmin), errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindUnexpected
	}
}
