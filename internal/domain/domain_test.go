package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchError(t *testing.T) {
	cause := errors.New("relation \"retail\" does not exist")

	tests := []struct {
		name     string
		err      *BatchError
		sentinel error
		wantMsg  string
	}{
		{
			name:     "Erro de conexão com tabela",
			err:      NewConnectionError("retail", cause),
			sentinel: ErrConnection,
			wantMsg:  `connection error [retail]: relation "retail" does not exist`,
		},
		{
			name:     "Erro de parse com detalhes",
			err:      NewParseError("linha 3: InvoiceDate \"x\"", nil),
			sentinel: ErrParse,
			wantMsg:  `parse error: linha 3: InvoiceDate "x"`,
		},
		{
			name:     "Erro de escrita completo",
			err:      NewWriteError(TableRFM, "database error (code: 42P01)", cause),
			sentinel: ErrWrite,
			wantMsg:  `write error [rfm_df]: database error (code: 42P01): relation "retail" does not exist`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.sentinel)

			if tt.err.Cause != nil {
				assert.ErrorIs(t, tt.err, cause)
			}

			var batchErr *BatchError
			require.ErrorAs(t, error(tt.err), &batchErr)
			assert.Equal(t, tt.err.Code, batchErr.Code)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	assert.Equal(t, 90, DaysBetween(time.Date(2011, 9, 10, 0, 0, 0, 0, time.UTC), time.Date(2011, 12, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysBetween(time.Date(2011, 12, 8, 23, 59, 0, 0, time.UTC), time.Date(2011, 12, 9, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(time.Date(2011, 12, 9, 22, 0, 0, 0, brt), time.Date(2011, 12, 9, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysBetween(time.Date(2011, 12, 10, 0, 0, 0, 0, time.UTC), time.Date(2011, 12, 9, 0, 0, 0, 0, time.UTC)))
	// Intervalos de séculos não passam por time.Duration
	assert.Equal(t, 119358, DaysBetween(time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -219145, DaysBetween(time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)))
	// Atravessa o horário de verão sem perder um dia
	sp, err := time.LoadLocation("America/Sao_Paulo")
	if err == nil {
		assert.Equal(t, 30, DaysBetween(time.Date(2018, 10, 20, 0, 0, 0, 0, sp), time.Date(2018, 11, 19, 0, 0, 0, 0, sp)))
	}
}

func TestAnalysisResult_Tables(t *testing.T) {
	uk := "UK"
	result := &AnalysisResult{
		CountryRevenue: []CountryRevenue{{Country: &uk, TotalInvoices: 2, TotalRevenue: 25}},
		ChurnAnalysis: []ChurnAnalysis{{
			LastPurchase:          LastPurchase{CustomerID: nil, LastPurchaseDate: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)},
			DaysSinceLastPurchase: 30,
			ChurnStatus:           ChurnStatusRetained,
		}},
	}

	tables := result.Tables()
	names := make([]string, len(tables))
	for i, table := range tables {
		names[i] = table.Name
		assert.Len(t, table.Columns, len(table.ColumnNames()))
	}

	assert.Equal(t, []string{
		TableRevenuePerCountry,
		TableTopProducts,
		TableLastPurchase,
		TableChurnAnalysis,
		TableRFM,
		TableMonthlySales,
	}, names)

	assert.Equal(t, []string{"Country", "Total_Invoices", "Total_Revenue"}, tables[0].ColumnNames())
	assert.Equal(t, [][]any{{"UK", int64(2), 25.0}}, tables[0].Rows)

	// CustomerID nulo vira nil na linha
	assert.Equal(t, []string{"CustomerID", "LastPurchaseDate", "DaysSinceLastPurchase", "ChurnStatus"}, tables[3].ColumnNames())
	assert.Nil(t, tables[3].Rows[0][0])
	assert.Equal(t, ChurnStatusRetained, tables[3].Rows[0][3])

	assert.Empty(t, tables[1].Rows)
	assert.NotNil(t, tables[1].Rows)
}
