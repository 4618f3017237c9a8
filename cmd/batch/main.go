package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-analytics-batch/infrastructure/database"
	"github.com/vfg2006/retail-analytics-batch/infrastructure/repository"
	"github.com/vfg2006/retail-analytics-batch/internal/config"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"github.com/vfg2006/retail-analytics-batch/internal/metrics"
	"github.com/vfg2006/retail-analytics-batch/internal/metrics/prompush"
	"github.com/vfg2006/retail-analytics-batch/internal/scheduler"
	"github.com/vfg2006/retail-analytics-batch/internal/usecases/analyzing"
	"github.com/vfg2006/retail-analytics-batch/internal/usecases/cleaning"
	"github.com/vfg2006/retail-analytics-batch/internal/usecases/processing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	if err := run(); err != nil {
		var batchErr *domain.BatchError
		if errors.As(err, &batchErr) {
			logrus.WithFields(logrus.Fields{
				"code":  batchErr.Code,
				"stage": batchErr.Stage,
				"table": batchErr.Table,
			}).WithError(err).Error("Análise de varejo falhou")
		} else {
			logrus.WithError(err).Error("Análise de varejo falhou")
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := dbconn(cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	configureMetrics(cfg.Metrics)

	retailRepo := repository.NewRetailRepository(conn, cfg.Source.Schema, cfg.Source.Table)
	resultRepo := repository.NewResultTableRepository(conn, cfg.Sink.BatchSize)

	cleaner := cleaning.NewService(cfg.Location())
	analyzer := analyzing.NewService(analyzing.Config{
		Location:           cfg.Location(),
		ChurnThresholdDays: cfg.Analysis.ChurnThresholdDays,
	})

	processor := processing.NewService(retailRepo, resultRepo, cleaner, analyzer, cfg.Metrics.JobName)
	job := scheduler.NewRetailAnalysisJob(processor, cfg)

	if !cfg.Job.CronEnabled {
		summary, err := job.RunOnce(ctx)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"run_id":       summary.RunID,
			"rows_read":    summary.RowsRead,
			"rows_written": summary.RowsWritten(),
		}).Info("Análise de varejo concluída com sucesso")
		return nil
	}

	if err := job.Start(ctx); err != nil {
		return err
	}
	logrus.Info("Agendador da análise de varejo iniciado com sucesso")

	<-ctx.Done()
	logrus.Info("Encerrando agendador da análise de varejo")

	return nil
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// configureMetrics instala o backend do Pushgateway quando configurado
func configureMetrics(cfg config.Metrics) {
	if cfg.PushgatewayURL == "" {
		logrus.Debug("PUSHGATEWAY_URL não definido; métricas desabilitadas")
		return
	}

	backend, err := prompush.NewBackend(cfg.JobName, cfg.PushgatewayURL)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao configurar o Pushgateway; métricas desabilitadas")
		return
	}

	metrics.SetBackend(backend)
	logrus.WithField("pushgateway", cfg.PushgatewayURL).Info("Métricas enviadas ao Pushgateway")
}

// dbconn prepara o pool de conexões; falhas de rede aparecem na leitura de cada tentativa
func dbconn(dbConfig config.Database) (*database.Connection, error) {
	conn, err := database.Open(dbConfig)
	if err != nil {
		logrus.WithError(err).Errorf("Erro ao configurar o banco (%s)", dbConfig.Driver)
		return nil, err
	}

	logrus.WithField("driver", dbConfig.Driver).Info("Pool de conexões com o banco configurado")
	return conn, nil
}
