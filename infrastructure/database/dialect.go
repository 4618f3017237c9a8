package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/retail-analytics-batch/internal/config"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
)

// Dialect concentra as diferenças de SQL entre os bancos suportados
type Dialect struct {
	DriverName    string
	Placeholder   squirrel.PlaceholderFormat
	MaxBindParams int
	// SupportsSchema indica se o banco aceita nomes qualificados schema.tabela
	SupportsSchema bool

	columnTypes map[domain.ColumnType]string
	// dateAsText grava datas como texto ISO (SQLite não tem tipo DATE)
	dateAsText bool
}

var postgresDialect = Dialect{
	DriverName:     config.DriverPostgres,
	Placeholder:    squirrel.Dollar,
	MaxBindParams:  65535,
	SupportsSchema: true,
	columnTypes: map[domain.ColumnType]string{
		domain.ColumnText:    "TEXT",
		domain.ColumnInteger: "INTEGER",
		domain.ColumnBigInt:  "BIGINT",
		domain.ColumnDouble:  "DOUBLE PRECISION",
		domain.ColumnDate:    "DATE",
	},
}

var sqliteDialect = Dialect{
	DriverName:    config.DriverSQLite,
	Placeholder:   squirrel.Question,
	MaxBindParams: 32766,
	columnTypes: map[domain.ColumnType]string{
		domain.ColumnText:    "TEXT",
		domain.ColumnInteger: "INTEGER",
		domain.ColumnBigInt:  "INTEGER",
		domain.ColumnDouble:  "REAL",
		domain.ColumnDate:    "TEXT",
	},
	dateAsText: true,
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return postgresDialect, nil
	case config.DriverSQLite:
		return sqliteDialect, nil
	default:
		return Dialect{}, fmt.Errorf("%w: driver de banco não suportado: %q", domain.ErrInvalidConfig, driver)
	}
}

func (d Dialect) ColumnType(t domain.ColumnType) string {
	if sqlType, ok := d.columnTypes[t]; ok {
		return sqlType
	}
	return "TEXT"
}

// BindValue adapta um valor de ResultTable para o driver
func (d Dialect) BindValue(v any) any {
	if t, ok := v.(time.Time); ok {
		if d.dateAsText {
			return t.Format(time.DateOnly)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return v
}

// QualifiedTable monta o nome da tabela, com schema quando o banco suporta
func (d Dialect) QualifiedTable(schema, table string) string {
	if schema == "" || !d.SupportsSchema {
		return QuoteIdent(table)
	}
	return QuoteIdent(schema) + "." + QuoteIdent(table)
}

// QuoteIdent protege identificadores com maiúsculas (InvoiceNo, Total_Revenue, ...)
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteIdents aplica QuoteIdent em cada nome
func QuoteIdents(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdent(n)
	}
	return quoted
}
