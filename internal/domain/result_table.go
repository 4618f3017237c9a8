package domain

// ColumnType é o tipo lógico de uma coluna de resultado; cada dialeto traduz para o tipo SQL
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnInteger
	ColumnBigInt
	ColumnDouble
	ColumnDate
)

type Column struct {
	Name string
	Type ColumnType
}

// ResultTable é uma tabela de resultado pronta para ser persistida.
// Valores nulos são representados por nil em Rows.
type ResultTable struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

func (t *ResultTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func CountryRevenueTable(rows []CountryRevenue) *ResultTable {
	t := &ResultTable{
		Name: TableRevenuePerCountry,
		Columns: []Column{
			{Name: "Country", Type: ColumnText},
			{Name: "Total_Invoices", Type: ColumnBigInt},
			{Name: "Total_Revenue", Type: ColumnDouble},
		},
		Rows: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{nullable(r.Country), r.TotalInvoices, r.TotalRevenue})
	}
	return t
}

func TopProductsTable(rows []ProductQuantity) *ResultTable {
	t := &ResultTable{
		Name: TableTopProducts,
		Columns: []Column{
			{Name: "Description", Type: ColumnText},
			{Name: "TotalQuantity", Type: ColumnBigInt},
		},
		Rows: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{nullable(r.Description), r.TotalQuantity})
	}
	return t
}

func LastPurchaseTable(rows []LastPurchase) *ResultTable {
	t := &ResultTable{
		Name: TableLastPurchase,
		Columns: []Column{
			{Name: "CustomerID", Type: ColumnText},
			{Name: "LastPurchaseDate", Type: ColumnDate},
		},
		Rows: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{nullable(r.CustomerID), r.LastPurchaseDate})
	}
	return t
}

func ChurnAnalysisTable(rows []ChurnAnalysis) *ResultTable {
	t := &ResultTable{
		Name: TableChurnAnalysis,
		Columns: []Column{
			{Name: "CustomerID", Type: ColumnText},
			{Name: "LastPurchaseDate", Type: ColumnDate},
			{Name: "DaysSinceLastPurchase", Type: ColumnInteger},
			{Name: "ChurnStatus", Type: ColumnText},
		},
		Rows: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{nullable(r.CustomerID), r.LastPurchaseDate, r.DaysSinceLastPurchase, r.ChurnStatus})
	}
	return t
}

func RFMTable(rows []RFM) *ResultTable {
	t := &ResultTable{
		Name: TableRFM,
		Columns: []Column{
			{Name: "CustomerID", Type: ColumnText},
			{Name: "LastPurchaseDate", Type: ColumnDate},
			{Name: "Frequency", Type: ColumnBigInt},
			{Name: "Monetary", Type: ColumnDouble},
			{Name: "Recency", Type: ColumnInteger},
		},
		Rows: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{nullable(r.CustomerID), r.LastPurchaseDate, r.Frequency, r.Monetary, r.Recency})
	}
	return t
}

func MonthlySalesTable(rows []MonthlySales) *ResultTable {
	t := &ResultTable{
		Name: TableMonthlySales,
		Columns: []Column{
			{Name: "Year", Type: ColumnInteger},
			{Name: "Month", Type: ColumnInteger},
			{Name: "MonthlyRevenue", Type: ColumnDouble},
		},
		Rows: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Year, r.Month, r.MonthlyRevenue})
	}
	return t
}
