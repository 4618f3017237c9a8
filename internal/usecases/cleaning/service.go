// Package cleaning converte as linhas cruas da tabela retail em transações tipadas
package cleaning

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"github.com/vfg2006/retail-analytics-batch/pkg/utils"
)

type Cleaner interface {
	Clean(rows []*domain.RawTransaction) ([]*domain.Transaction, error)
}

type Service struct {
	location *time.Location
}

func NewService(location *time.Location) Cleaner {
	if location == nil {
		location = time.UTC
	}
	return &Service{location: location}
}

// Clean aplica as regras de limpeza em ordem. Qualquer linha inválida interrompe a execução;
// nenhuma linha é descartada.
func (s *Service) Clean(rows []*domain.RawTransaction) ([]*domain.Transaction, error) {
	cleaned := make([]*domain.Transaction, 0, len(rows))

	for i, raw := range rows {
		tx, err := s.cleanRow(i, raw)
		if err != nil {
			return nil, err
		}
		cleaned = append(cleaned, tx)
	}

	return cleaned, nil
}

func (s *Service) cleanRow(index int, raw *domain.RawTransaction) (*domain.Transaction, error) {
	// 1 e 2. InvoiceDate e InvoiceTime saem do mesmo parse
	invoiceTime, err := utils.ParseDateInLocation(domain.InvoiceDateLayout, raw.InvoiceDate.String, s.location)
	if err != nil {
		return nil, domain.NewParseError(
			fmt.Sprintf("linha %d: InvoiceDate %q fora do formato M/d/yyyy H:mm", index, raw.InvoiceDate.String),
			err,
		)
	}

	// 3. InvoiceNo inteiro estrito
	invoiceNo, err := parseInvoiceNo(raw.InvoiceNo)
	if err != nil {
		return nil, domain.NewParseError(
			fmt.Sprintf("linha %d: InvoiceNo %q não é inteiro", index, raw.InvoiceNo.String),
			err,
		)
	}

	// 4. Nulos viram zero
	var quantity int64
	if raw.Quantity.Valid {
		quantity = raw.Quantity.Int64
	}

	var unitPrice float64
	if raw.UnitPrice.Valid {
		unitPrice = raw.UnitPrice.Float64
	}

	// 5. Receita derivada
	return &domain.Transaction{
		InvoiceNo:   invoiceNo,
		Description: nullString(raw.Description),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		InvoiceTime: invoiceTime,
		CustomerID:  nullString(raw.CustomerID),
		Country:     nullString(raw.Country),
		Revenue:     float64(quantity) * unitPrice,
	}, nil
}

func parseInvoiceNo(v sql.NullString) (int64, error) {
	if !v.Valid {
		return 0, fmt.Errorf("valor nulo")
	}
	return strconv.ParseInt(strings.TrimSpace(v.String), 10, 64)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
