package cleaning

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
)

func str(v string) sql.NullString { return sql.NullString{String: v, Valid: true} }
func i64(v int64) sql.NullInt64    { return sql.NullInt64{Int64: v, Valid: true} }
func f64(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func validRow() *domain.RawTransaction {
	return &domain.RawTransaction{
		InvoiceNo:   str("536365"),
		Description: str("WHITE HANGING HEART T-LIGHT HOLDER"),
		Quantity:    i64(6),
		UnitPrice:   f64(2.55),
		InvoiceDate: str("12/1/2010 8:26"),
		CustomerID:  str("17850"),
		Country:     str("United Kingdom"),
	}
}

func TestService_Clean(t *testing.T) {
	cleaner := NewService(time.UTC)

	tests := []struct {
		name     string
		modify   func(r *domain.RawTransaction)
		validate func(t *testing.T, tx *domain.Transaction)
	}{
		{
			name:   "Linha completa - converte tipos e calcula receita",
			modify: func(r *domain.RawTransaction) {},
			validate: func(t *testing.T, tx *domain.Transaction) {
				assert.Equal(t, int64(536365), tx.InvoiceNo)
				assert.Equal(t, int64(6), tx.Quantity)
				assert.Equal(t, 2.55, tx.UnitPrice)
				assert.InDelta(t, 15.3, tx.Revenue, 1e-9)
				assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), tx.InvoiceTime)
				assert.Equal(t, time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC), tx.InvoiceDate())
				require.NotNil(t, tx.CustomerID)
				assert.Equal(t, "17850", *tx.CustomerID)
				require.NotNil(t, tx.Country)
				assert.Equal(t, "United Kingdom", *tx.Country)
			},
		},
		{
			name: "Quantity nulo vira zero",
			modify: func(r *domain.RawTransaction) {
				r.Quantity = sql.NullInt64{}
			},
			validate: func(t *testing.T, tx *domain.Transaction) {
				assert.Equal(t, int64(0), tx.Quantity)
				assert.Equal(t, 0.0, tx.Revenue)
			},
		},
		{
			name: "UnitPrice nulo vira zero",
			modify: func(r *domain.RawTransaction) {
				r.UnitPrice = sql.NullFloat64{}
			},
			validate: func(t *testing.T, tx *domain.Transaction) {
				assert.Equal(t, 0.0, tx.UnitPrice)
				assert.Equal(t, 0.0, tx.Revenue)
			},
		},
		{
			name: "Devolução com quantidade negativa gera receita negativa",
			modify: func(r *domain.RawTransaction) {
				r.Quantity = i64(-2)
				r.UnitPrice = f64(4.25)
			},
			validate: func(t *testing.T, tx *domain.Transaction) {
				assert.Equal(t, -8.5, tx.Revenue)
			},
		},
		{
			name: "CustomerID e Description nulos são preservados como nulos",
			modify: func(r *domain.RawTransaction) {
				r.CustomerID = sql.NullString{}
				r.Description = sql.NullString{}
			},
			validate: func(t *testing.T, tx *domain.Transaction) {
				assert.Nil(t, tx.CustomerID)
				assert.Nil(t, tx.Description)
			},
		},
		{
			name: "InvoiceNo com espaços nas pontas",
			modify: func(r *domain.RawTransaction) {
				r.InvoiceNo = str(" 42 ")
			},
			validate: func(t *testing.T, tx *domain.Transaction) {
				assert.Equal(t, int64(42), tx.InvoiceNo)
			},
		},
		{
			name: "Hora com dois dígitos",
			modify: func(r *domain.RawTransaction) {
				r.InvoiceDate = str("1/10/2011 17:05")
			},
			validate: func(t *testing.T, tx *domain.Transaction) {
				assert.Equal(t, time.Date(2011, 1, 10, 17, 5, 0, 0, time.UTC), tx.InvoiceTime)
				assert.Equal(t, tx.InvoiceDate(), domain.DateOf(tx.InvoiceTime))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.modify(row)

			result, err := cleaner.Clean([]*domain.RawTransaction{row})
			require.NoError(t, err)
			require.Len(t, result, 1)
			tt.validate(t, result[0])
		})
	}
}

func TestService_Clean_ParseErrors(t *testing.T) {
	cleaner := NewService(time.UTC)

	tests := []struct {
		name   string
		modify func(r *domain.RawTransaction)
	}{
		{name: "InvoiceDate em formato ISO", modify: func(r *domain.RawTransaction) { r.InvoiceDate = str("2010-12-01 08:26") }},
		{name: "InvoiceDate nulo", modify: func(r *domain.RawTransaction) { r.InvoiceDate = sql.NullString{} }},
		{name: "InvoiceDate com mês inválido", modify: func(r *domain.RawTransaction) { r.InvoiceDate = str("13/1/2010 8:26") }},
		{name: "InvoiceNo de cancelamento", modify: func(r *domain.RawTransaction) { r.InvoiceNo = str("C536379") }},
		{name: "InvoiceNo fracionário", modify: func(r *domain.RawTransaction) { r.InvoiceNo = str("536365.5") }},
		{name: "InvoiceNo nulo", modify: func(r *domain.RawTransaction) { r.InvoiceNo = sql.NullString{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := validRow()
			tt.modify(bad)

			result, err := cleaner.Clean([]*domain.RawTransaction{validRow(), bad})
			assert.Nil(t, result)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParse)

			var batchErr *domain.BatchError
			require.ErrorAs(t, err, &batchErr)
			assert.Equal(t, domain.StageClean, batchErr.Stage)
			assert.Contains(t, batchErr.Details, "linha 1")
		})
	}
}

func TestService_Clean_KeepsEveryRow(t *testing.T) {
	cleaner := NewService(time.UTC)

	rows := make([]*domain.RawTransaction, 0, 50)
	for i := 0; i < 50; i++ {
		r := validRow()
		if i%3 == 0 {
			r.Quantity = sql.NullInt64{}
		}
		if i%4 == 0 {
			r.UnitPrice = sql.NullFloat64{}
		}
		rows = append(rows, r)
	}

	result, err := cleaner.Clean(rows)
	require.NoError(t, err)
	require.Len(t, result, len(rows))

	for _, tx := range result {
		assert.Equal(t, float64(tx.Quantity)*tx.UnitPrice, tx.Revenue)
	}
}

func TestService_Clean_UsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	cleaner := NewService(loc)

	result, err := cleaner.Clean([]*domain.RawTransaction{validRow()})
	require.NoError(t, err)

	assert.Equal(t, loc, result[0].InvoiceTime.Location())
	assert.Equal(t, 1, result[0].InvoiceDate().Day())
}
