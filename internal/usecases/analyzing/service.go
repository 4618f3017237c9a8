// Package analyzing contém os cinco cálculos de métricas sobre a tabela limpa
package analyzing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"golang.org/x/sync/errgroup"
)

type Analyzer interface {
	Analyze(ctx context.Context, txs []*domain.Transaction) (*domain.AnalysisResult, error)
}

type Config struct {
	Location           *time.Location
	ChurnThresholdDays int
}

type Service struct {
	config Config
	now    func() time.Time
}

func NewService(cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// WithClock substitui o relógio usado para a data corrente
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Analyze executa os cálculos de forma independente sobre a mesma tabela.
// A data corrente é lida uma única vez, então Churn e Recency são consistentes entre si.
func (s *Service) Analyze(ctx context.Context, txs []*domain.Transaction) (*domain.AnalysisResult, error) {
	computedAt := s.now().In(s.config.Location)
	today := domain.DateOf(computedAt)

	result := &domain.AnalysisResult{ComputedAt: computedAt}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result.CountryRevenue = CountryRevenue(txs)
		return ctx.Err()
	})

	g.Go(func() error {
		result.TopProducts = TopProducts(txs)
		return ctx.Err()
	})

	g.Go(func() error {
		result.LastPurchases = LastPurchases(txs)
		result.ChurnAnalysis = ChurnAnalysis(result.LastPurchases, today, s.config.ChurnThresholdDays)
		return ctx.Err()
	})

	g.Go(func() error {
		result.RFM = RFM(txs, today)
		return ctx.Err()
	})

	g.Go(func() error {
		result.MonthlySales = MonthlySales(txs)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"countries":  len(result.CountryRevenue),
		"products":   len(result.TopProducts),
		"customers":  len(result.LastPurchases),
		"months":     len(result.MonthlySales),
		"current_dt": today.Format(time.DateOnly),
	}).Debug("Métricas calculadas")

	return result, nil
}
