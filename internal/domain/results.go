package domain

import "time"

// Nomes fixos das tabelas de resultado no banco de destino
const (
	TableRevenuePerCountry = "revenue_per_country"
	TableTopProducts       = "top_products"
	TableLastPurchase      = "last_purchase"
	TableChurnAnalysis     = "churn_analysis"
	TableRFM               = "rfm_df"
	TableMonthlySales      = "monthly_sales"
)

const (
	ChurnStatusChurned  = "Churned"
	ChurnStatusRetained = "Retained"
)

type CountryRevenue struct {
	Country       *string
	TotalInvoices int64
	TotalRevenue  float64
}

type ProductQuantity struct {
	Description   *string
	TotalQuantity int64
}

type LastPurchase struct {
	CustomerID       *string
	LastPurchaseDate time.Time
}

type ChurnAnalysis struct {
	LastPurchase
	DaysSinceLastPurchase int
	ChurnStatus           string
}

type RFM struct {
	CustomerID       *string
	LastPurchaseDate time.Time
	Frequency        int64
	Monetary         float64
	Recency          int
}

type MonthlySales struct {
	Year           int
	Month          int
	MonthlyRevenue float64
}

// AnalysisResult agrupa as seis tabelas calculadas em uma execução
type AnalysisResult struct {
	CountryRevenue []CountryRevenue
	TopProducts    []ProductQuantity
	LastPurchases  []LastPurchase
	ChurnAnalysis  []ChurnAnalysis
	RFM            []RFM
	MonthlySales   []MonthlySales
	ComputedAt     time.Time
}

// Tables converte o resultado nas tabelas a serem gravadas, na ordem de escrita
func (r *AnalysisResult) Tables() []*ResultTable {
	return []*ResultTable{
		CountryRevenueTable(r.CountryRevenue),
		TopProductsTable(r.TopProducts),
		LastPurchaseTable(r.LastPurchases),
		ChurnAnalysisTable(r.ChurnAnalysis),
		RFMTable(r.RFM),
		MonthlySalesTable(r.MonthlySales),
	}
}
