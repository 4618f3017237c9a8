package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-analytics-batch/infrastructure/database"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
)

var retailColumns = []string{
	"InvoiceNo",
	"Description",
	"Quantity",
	"UnitPrice",
	"InvoiceDate",
	"CustomerID",
	"Country",
}

//go:generate mockgen -source=retail.go -destination=mocks/retail.go -package=mocks
type RetailRepository interface {
	ListTransactions(ctx context.Context) ([]*domain.RawTransaction, error)
}

type retailRepository struct {
	conn   *database.Connection
	schema string
	table  string
}

func NewRetailRepository(conn *database.Connection, schema, table string) RetailRepository {
	return &retailRepository{
		conn:   conn,
		schema: schema,
		table:  table,
	}
}

// ListTransactions lê a tabela de origem inteira. Qualquer falha descarta o que já foi lido.
func (r *retailRepository) ListTransactions(ctx context.Context) ([]*domain.RawTransaction, error) {
	source := r.conn.Dialect.QualifiedTable(r.schema, r.table)

	retailSQL, retailArgs, err := squirrel.
		Select(database.QuoteIdents(retailColumns)...).
		From(source).
		PlaceholderFormat(r.conn.Dialect.Placeholder).
		ToSql()
	if err != nil {
		return nil, domain.NewConnectionError(r.table, fmt.Errorf("erro ao construir a query: %w", err))
	}

	rows, err := r.conn.QueryContext(ctx, retailSQL, retailArgs...)
	if err != nil {
		return nil, domain.NewConnectionError(r.table, fmt.Errorf("erro ao executar a query: %w", err))
	}
	defer rows.Close()

	transactions := make([]*domain.RawTransaction, 0)

	for rows.Next() {
		tx := &domain.RawTransaction{}
		if err := rows.Scan(
			&tx.InvoiceNo,
			&tx.Description,
			&tx.Quantity,
			&tx.UnitPrice,
			&tx.InvoiceDate,
			&tx.CustomerID,
			&tx.Country,
		); err != nil {
			// Valor incompatível com o tipo da coluna, ex: texto em Quantity
			parseErr := domain.NewParseError(
				fmt.Sprintf("linha %d da tabela %s", len(transactions)+1, r.table),
				fmt.Errorf("erro ao deserializar a linha: %w", err),
			)
			parseErr.Stage = domain.StageRead
			parseErr.Table = r.table
			return nil, parseErr
		}

		transactions = append(transactions, tx)
	}

	// Verifica se houve erros durante a iteração
	if err := rows.Err(); err != nil {
		return nil, domain.NewConnectionError(r.table, fmt.Errorf("erro ao iterar sobre os resultados: %w", err))
	}

	logrus.WithFields(logrus.Fields{
		"table": source,
		"rows":  len(transactions),
	}).Debug("Tabela de origem lida")

	return transactions, nil
}
