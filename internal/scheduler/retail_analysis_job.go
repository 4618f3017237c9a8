// Package scheduler contém o disparo agendado da análise de varejo
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-analytics-batch/internal/config"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"github.com/vfg2006/retail-analytics-batch/internal/metrics"
	"github.com/vfg2006/retail-analytics-batch/internal/usecases/processing"
)

var ErrJobAlreadyRunning = errors.New("análise de varejo já está em execução")

type RetailAnalysisJobConfig struct {
	CronSchedule string
	CronEnabled  bool
	Timeout      time.Duration
	Retries      int
	RetryDelay   time.Duration
}

// RetailAnalysisJob aplica a política de execução (timeout, novas tentativas e cron)
// em volta do processamento, que por si só nunca repete nada.
type RetailAnalysisJob struct {
	scheduler           *gocron.Scheduler
	processor           processing.Processor
	config              RetailAnalysisJobConfig
	sleep               func(ctx context.Context, d time.Duration) error
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastAttempts        int
	lastError           error
}

func NewRetailAnalysisJob(processor processing.Processor, cfg *config.Config) *RetailAnalysisJob {
	jobConfig := RetailAnalysisJobConfig{
		CronSchedule: cfg.Job.Cron,        // Default: 2h da manhã todos os dias
		CronEnabled:  cfg.Job.CronEnabled, // Default: desabilitado (execução única)
		Timeout:      cfg.Job.Timeout,
		Retries:      cfg.Job.Retries,
		RetryDelay:   cfg.Job.RetryDelay,
	}

	scheduler := gocron.NewScheduler(cfg.Location())

	logrus.WithFields(logrus.Fields{
		"cron_schedule": jobConfig.CronSchedule,
		"cron_enabled":  jobConfig.CronEnabled,
		"timeout":       jobConfig.Timeout.String(),
		"retries":       jobConfig.Retries,
		"retry_delay":   jobConfig.RetryDelay.String(),
	}).Info("Configuração do agendador da análise de varejo carregada")

	return &RetailAnalysisJob{
		scheduler: scheduler,
		processor: processor,
		config:    jobConfig,
		sleep:     sleepContext,
	}
}

func (s *RetailAnalysisJob) Start(ctx context.Context) error {
	if !s.config.CronEnabled {
		logrus.Info("Cron da análise de varejo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron da análise de varejo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunOnce(ctx); err != nil {
			logrus.WithError(err).Error("Erro na análise de varejo agendada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar a análise de varejo: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron da análise de varejo")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa a análise com timeout por tentativa e até Retries novas tentativas.
// Execuções sobrepostas são recusadas com ErrJobAlreadyRunning.
func (s *RetailAnalysisJob) RunOnce(ctx context.Context) (*domain.RunSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Análise de varejo já está em execução")
		return nil, ErrJobAlreadyRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	var (
		summary  *domain.RunSummary
		err      error
		attempts int
	)

	defer func() {
		s.syncMutex.Lock()
		defer s.syncMutex.Unlock()

		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastAttempts = attempts
		s.lastError = err
		if summary != nil {
			s.lastRunID = summary.RunID
		}
	}()

	maxAttempts := s.config.Retries + 1
	for attempts = 1; attempts <= maxAttempts; attempts++ {
		summary, err = s.runAttempt(ctx, attempts)
		if err == nil {
			return summary, nil
		}

		// Cancelamento externo encerra sem novas tentativas
		if ctx.Err() != nil {
			return summary, err
		}

		if attempts == maxAttempts {
			break
		}

		logrus.WithFields(logrus.Fields{
			"attempt":     attempts,
			"retry_delay": s.config.RetryDelay.String(),
		}).WithError(err).Warn("Análise de varejo falhou, nova tentativa agendada")

		if sleepErr := s.sleep(ctx, s.config.RetryDelay); sleepErr != nil {
			return summary, err
		}
	}

	return summary, errors.Wrapf(err, "análise de varejo falhou após %d tentativa(s)", attempts)
}

func (s *RetailAnalysisJob) runAttempt(ctx context.Context, attempt int) (*domain.RunSummary, error) {
	attemptCtx := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	logrus.WithField("attempt", attempt).Info("Iniciando tentativa da análise de varejo")

	summary, err := s.processor.Run(attemptCtx)

	if flushErr := metrics.Flush(); flushErr != nil {
		logrus.WithError(flushErr).Warn("Erro ao enviar métricas ao Pushgateway")
	}

	if err != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		err = errors.Wrapf(err, "tempo limite de %s excedido", s.config.Timeout)
	}

	return summary, err
}

// GetStatus retorna o status atual do agendador
func (s *RetailAnalysisJob) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.CronEnabled,
		"timeout":                s.config.Timeout.String(),
		"retries":                s.config.Retries,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run_id":            s.lastRunID,
		"last_attempts":          s.lastAttempts,
	}
	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}

	return status
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
