package handler

import (
	"fmt"
	"net/http"
)

// HTTPError maps an error to a status code and a user facing message.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e HTTPError) Unwrap() error {
	return e.Err
}

// Wrap returns a copy of e carrying err as its cause.
func (e HTTPError) Wrap(err error) HTTPError {
	e.Err = err
	return e
}

func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Message: "Requisição inválida"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Message: "Recurso não encontrado"}
	ErrRequestTooLarge      = HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "Corpo da requisição muito grande"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Message: "Content-Type deve ser application/json"}
	ErrTooManyRequests      = HTTPError{Code: http.StatusTooManyRequests, Message: "Muitas requisições, tente novamente mais tarde"}
	ErrInternal             = HTTPError{Code: http.StatusInternalServerError, Message: "Erro interno do servidor"}
	ErrServiceUnavailable   = HTTPError{Code: http.StatusServiceUnavailable, Message: "Banco de dados indisponível"}
)
