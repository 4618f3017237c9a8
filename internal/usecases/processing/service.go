// Package processing orquestra uma execução completa: leitura, limpeza, cálculo e gravação
package processing

import (
	"context"
	"time"

	"github.com/vfg2006/retail-analytics-batch/infrastructure/repository"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"github.com/vfg2006/retail-analytics-batch/internal/metrics"
	"github.com/vfg2006/retail-analytics-batch/internal/usecases/analyzing"
	"github.com/vfg2006/retail-analytics-batch/internal/usecases/cleaning"
	"github.com/vfg2006/retail-analytics-batch/pkg/log"
)

// DefaultJobName identifica as métricas do batch quando nenhum nome é configurado
const DefaultJobName = "retail_analysis"

type Processor interface {
	Run(ctx context.Context) (*domain.RunSummary, error)
}

type Service struct {
	retailRepo repository.RetailRepository
	resultRepo repository.ResultTableRepository
	cleaner    cleaning.Cleaner
	analyzer   analyzing.Analyzer
	jobName    string
	now        func() time.Time
}

func NewService(
	retailRepo repository.RetailRepository,
	resultRepo repository.ResultTableRepository,
	cleaner cleaning.Cleaner,
	analyzer analyzing.Analyzer,
	jobName string,
) *Service {
	if jobName == "" {
		jobName = DefaultJobName
	}

	return &Service{
		retailRepo: retailRepo,
		resultRepo: resultRepo,
		cleaner:    cleaner,
		analyzer:   analyzer,
		jobName:    jobName,
		now:        time.Now,
	}
}

// Run executa o pipeline uma única vez e para no primeiro erro, sem novas tentativas.
// Em caso de falha na gravação, as tabelas anteriores já foram substituídas e as
// seguintes permanecem intactas; o resumo parcial é retornado junto com o erro.
func (s *Service) Run(ctx context.Context) (*domain.RunSummary, error) {
	ctx, runID := log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx)

	summary := &domain.RunSummary{
		RunID:     runID,
		StartedAt: s.now(),
	}

	logger.Info("Iniciando análise de varejo")

	var raw []*domain.RawTransaction
	err := s.step(ctx, domain.StageRead, func() error {
		var err error
		raw, err = s.retailRepo.ListTransactions(ctx)
		return err
	})
	if err != nil {
		return summary, err
	}
	summary.RowsRead = len(raw)
	metrics.RecordRow(s.jobName, "read", int64(len(raw)))

	var txs []*domain.Transaction
	err = s.step(ctx, domain.StageClean, func() error {
		var err error
		txs, err = s.cleaner.Clean(raw)
		return err
	})
	if err != nil {
		return summary, err
	}

	var result *domain.AnalysisResult
	err = s.step(ctx, domain.StageAnalyze, func() error {
		var err error
		result, err = s.analyzer.Analyze(ctx, txs)
		return err
	})
	if err != nil {
		return summary, err
	}

	err = s.step(ctx, domain.StageWrite, func() error {
		return s.writeTables(ctx, result.Tables(), summary)
	})
	if err != nil {
		return summary, err
	}

	summary.CompletedAt = s.now()

	logger.WithFields(log.Fields{
		"rows":        summary.RowsWritten(),
		"duration_ms": summary.CompletedAt.Sub(summary.StartedAt).Milliseconds(),
	}).Infof("Análise concluída: %d linhas lidas, %d tabelas gravadas", summary.RowsRead, len(summary.Writes))

	return summary, nil
}

// writeTables grava as tabelas na ordem recebida e para na primeira falha
func (s *Service) writeTables(ctx context.Context, tables []*domain.ResultTable, summary *domain.RunSummary) error {
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.resultRepo.Overwrite(ctx, table); err != nil {
			return err
		}

		summary.Writes = append(summary.Writes, domain.TableWrite{Table: table.Name, Rows: len(table.Rows)})
		metrics.RecordRow(s.jobName, "written", int64(len(table.Rows)))

		log.ForContext(ctx).WithFields(log.Fields{
			"table": table.Name,
			"rows":  len(table.Rows),
		}).Info("Tabela gravada")
	}

	return nil
}

// step executa uma etapa registrando duração e resultado
func (s *Service) step(ctx context.Context, stage string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	metrics.RecordStep(s.jobName, stage, err, elapsed)

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"stage":       stage,
		"duration_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		logger.WithError(err).Error("Etapa falhou")
		return err
	}

	logger.Debug("Etapa concluída")
	return nil
}
