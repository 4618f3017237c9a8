package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/vfg2006/retail-analytics-batch/internal/config"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	_ "modernc.org/sqlite"
)

type Connection struct {
	*sql.DB
	Dialect Dialect
}

// Open prepara o pool sem abrir conexões; a primeira query é quem conecta de fato,
// dentro da execução do job.
func Open(cfg config.Database) (*Connection, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName, cfg.DSN)
	if err != nil {
		return nil, domain.NewConnectionError("", fmt.Errorf("open %s: %w", dialect.DriverName, err))
	}

	// Banco SQLite em memória existe apenas dentro de uma conexão
	if dialect.DriverName == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	return &Connection{DB: db, Dialect: dialect}, nil
}

// NewConnection abre o pool e valida a conexão com um ping
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	conn, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return domain.NewConnectionError("", fmt.Errorf("ping %s: %w", c.Dialect.DriverName, err))
	}
	return nil
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
