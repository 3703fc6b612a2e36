package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound lo devuelven los repositorios cuando el registro no existe.
// Los adapters (memory/postgres/remote) comparten el mismo sentinel para que
// los services puedan chequearlo con errors.Is sin importar el storage.
var ErrNotFound = errors.New("not found")

// FieldViolation describe una violación puntual sobre un campo del input.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError acumula TODAS las violaciones de una operación, no solo la
// primera, para que el caller pueda mostrarlas juntas en el formulario.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add registra una violación sobre un campo.
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// Has indica si hay una violación registrada para el campo.
func (e *ValidationError) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// OrNil devuelve el error solo si acumuló violaciones.
// Permite escribir `return v.OrNil()` al final de una validación.
func (e *ValidationError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// ConflictError señala una violación de unicidad (ej: código de arete duplicado).
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EligibilityError señala una operación no aplicable al estado de la entidad
// (ej: registrar ordeño para un animal que no produce leche).
type EligibilityError struct {
	Reason string
}

func (e *EligibilityError) Error() string {
	return e.Reason
}

// TransportError envuelve cualquier falla del colaborador HTTP remoto.
// Message lleva el mensaje legible del payload estructurado cuando el
// servicio remoto lo incluye; si no, un resumen de la falla.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return "transport: " + e.Message
	}
	if e.Err != nil {
		return "transport: " + e.Err.Error()
	}
	return "transport error"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
