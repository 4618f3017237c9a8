package domain

import (
	"errors"
	"fmt"
)

// Taxonomia de erros da execução. Todos são fatais para o run.
var (
	ErrConnection    = errors.New("connection error")
	ErrParse         = errors.New("parse error")
	ErrWrite         = errors.New("write error")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Códigos expostos em logs e métricas
const (
	CodeConnection = "CONN_001"
	CodeParse      = "PARSE_001"
	CodeWrite      = "WRITE_001"
)

// Etapas do pipeline
const (
	StageRead    = "read"
	StageClean   = "clean"
	StageAnalyze = "analyze"
	StageWrite   = "write"
)

// BatchError é um erro com contexto adicional sobre onde a execução falhou
type BatchError struct {
	Err     error  // Erro base da taxonomia (ErrConnection, ErrParse, ErrWrite)
	Code    string // Código para logs/métricas
	Stage   string // Etapa em que ocorreu
	Table   string // Tabela envolvida (quando aplicável)
	Details string // Detalhes adicionais
	Cause   error  // Erro original do driver/parser
}

func (e *BatchError) Error() string {
	msg := e.Err.Error()
	if e.Table != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Table)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap permite errors.Is tanto com o erro base quanto com a causa original
func (e *BatchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NewConnectionError(table string, cause error) *BatchError {
	return &BatchError{
		Err:   ErrConnection,
		Code:  CodeConnection,
		Stage: StageRead,
		Table: table,
		Cause: cause,
	}
}

func NewParseError(details string, cause error) *BatchError {
	return &BatchError{
		Err:     ErrParse,
		Code:    CodeParse,
		Stage:   StageClean,
		Details: details,
		Cause:   cause,
	}
}

func NewWriteError(table string, details string, cause error) *BatchError {
	return &BatchError{
		Err:     ErrWrite,
		Code:    CodeWrite,
		Stage:   StageWrite,
		Table:   table,
		Details: details,
		Cause:   cause,
	}
}
