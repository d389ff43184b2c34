package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio. Los casos de uso devuelven estos sentinels (o un *Error que los envuelve)
// y la capa HTTP los traduce a códigos de estado.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidState      = errors.New("transición de estado inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("fallo de persistencia")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// Error es un fallo estructurado: tipo (uno de los sentinels), mensaje y el identificador
// del recurso que lo provocó (producto sin stock, venta inexistente, etc.).
type Error struct {
	Kind       error
	Message    string
	ResourceID string
	Err        error // causa subyacente (opcional)
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap permite errors.Is(err, domain.ErrXxx) y también llegar a la causa.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NotFound recurso inexistente (cliente, producto, venta, registro de inventario).
func NotFound(resource, id string) error {
	return &Error{Kind: ErrNotFound, Message: resource + " " + id, ResourceID: id}
}

// InvalidState transición no permitida para el estado actual.
func InvalidState(id, format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...), ResourceID: id}
}

// Validation entrada mal formada.
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStock nombra el producto sin existencias suficientes.
func InsufficientStock(productID, location string, requested, available fmt.Stringer) error {
	return &Error{
		Kind:       ErrInsufficientStock,
		Message:    fmt.Sprintf("producto %s en %s: solicitado %s, disponible %s", productID, location, requested, available),
		ResourceID: productID,
	}
}

// Persistence envuelve fallos del almacenamiento subyacente.
func Persistence(op string, err error) error {
	return &Error{Kind: ErrPersistence, Message: op, Err: err}
}

// ResourceID devuelve el identificador del recurso asociado al error, si lo hay.
func ResourceID(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.ResourceID
	}
	return ""
}
