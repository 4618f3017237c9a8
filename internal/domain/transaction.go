// Package domain contém as estruturas de dados do pipeline de análise de varejo
package domain

import (
	"database/sql"
	"time"
)

// InvoiceDateLayout é o formato de InvoiceDate na tabela de origem (M/d/yyyy H:mm)
const InvoiceDateLayout = "1/2/2006 15:04"

// RawTransaction representa uma linha da tabela retail exatamente como lida do banco
type RawTransaction struct {
	InvoiceNo   sql.NullString
	Description sql.NullString
	Quantity    sql.NullInt64
	UnitPrice   sql.NullFloat64
	InvoiceDate sql.NullString
	CustomerID  sql.NullString
	Country     sql.NullString
}

// Transaction é uma linha já limpa e tipada.
// InvoiceDate e InvoiceTime compartilham o mesmo valor parseado (InvoiceTime),
// então nunca divergem.
type Transaction struct {
	InvoiceNo   int64
	Description *string
	Quantity    int64
	UnitPrice   float64
	InvoiceTime time.Time
	CustomerID  *string
	Country     *string
	Revenue     float64
}

// InvoiceDate retorna a data de calendário da transação (meia-noite, mesmo fuso de InvoiceTime)
func (t *Transaction) InvoiceDate() time.Time {
	return DateOf(t.InvoiceTime)
}

// DateOf trunca um instante para a data de calendário no próprio fuso
func DateOf(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// DaysBetween retorna a diferença inteira em dias de calendário (to - from),
// ignorando hora e fuso
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int((t.Unix() - f.Unix()) / 86400)
}
