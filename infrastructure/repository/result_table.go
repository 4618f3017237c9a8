package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-analytics-batch/infrastructure/database"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
)

const defaultBatchSize = 1000

//go:generate mockgen -source=result_table.go -destination=mocks/result_table.go -package=mocks
type ResultTableRepository interface {
	Overwrite(ctx context.Context, table *domain.ResultTable) error
}

type resultTableRepository struct {
	conn      *database.Connection
	batchSize int
}

func NewResultTableRepository(conn *database.Connection, batchSize int) ResultTableRepository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &resultTableRepository{
		conn:      conn,
		batchSize: batchSize,
	}
}

// Overwrite substitui a tabela de destino inteira dentro de uma única transação:
// quem lê o banco vê a versão anterior ou a nova, nunca uma tabela pela metade.
func (r *resultTableRepository) Overwrite(ctx context.Context, table *domain.ResultTable) error {
	if table == nil || table.Name == "" || len(table.Columns) == 0 {
		return domain.NewWriteError("", "tabela de resultado inválida", nil)
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.dropTableSQL(table)); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}

		if _, err := tx.ExecContext(ctx, r.createTableSQL(table)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}

		return r.insertRows(ctx, tx, table)
	})
	if err != nil {
		return domain.NewWriteError(table.Name, pqDetails(err), err)
	}

	logrus.WithFields(logrus.Fields{
		"table": table.Name,
		"rows":  len(table.Rows),
	}).Debug("Tabela de resultado gravada")

	return nil
}

func (r *resultTableRepository) dropTableSQL(table *domain.ResultTable) string {
	return "DROP TABLE IF EXISTS " + database.QuoteIdent(table.Name)
}

func (r *resultTableRepository) createTableSQL(table *domain.ResultTable) string {
	columns := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		columns[i] = database.QuoteIdent(c.Name) + " " + r.conn.Dialect.ColumnType(c.Type)
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", database.QuoteIdent(table.Name), strings.Join(columns, ", "))
}

// insertRows grava as linhas em lotes de INSERT multi-valores
func (r *resultTableRepository) insertRows(ctx context.Context, q database.Queryer, table *domain.ResultTable) error {
	batchSize := r.effectiveBatchSize(len(table.Columns))
	columns := database.QuoteIdents(table.ColumnNames())

	for start := 0; start < len(table.Rows); start += batchSize {
		end := start + batchSize
		if end > len(table.Rows) {
			end = len(table.Rows)
		}

		query := squirrel.StatementBuilder.
			Insert(database.QuoteIdent(table.Name)).
			Columns(columns...).
			PlaceholderFormat(r.conn.Dialect.Placeholder)

		for i, row := range table.Rows[start:end] {
			if len(row) != len(table.Columns) {
				return fmt.Errorf("linha %d com %d valores, esperado %d", start+i, len(row), len(table.Columns))
			}

			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = r.conn.Dialect.BindValue(v)
			}
			query = query.Values(values...)
		}

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := q.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// effectiveBatchSize limita o lote ao número máximo de parâmetros do banco
func (r *resultTableRepository) effectiveBatchSize(columns int) int {
	batchSize := r.batchSize
	if maxRows := r.conn.Dialect.MaxBindParams / columns; maxRows > 0 && batchSize > maxRows {
		batchSize = maxRows
	}
	return batchSize
}

func pqDetails(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Sprintf("database error (code: %s)", pqErr.Code)
	}
	return ""
}
