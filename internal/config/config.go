package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/retail-analytics-batch/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Source   Source   `mapstructure:",squash"`
	Sink     Sink     `mapstructure:",squash"`
	Analysis Analysis `mapstructure:",squash"`
	Job      Job      `mapstructure:",squash"`
	Metrics  Metrics  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"`
}

// Database agrupa os parâmetros de conexão do banco de origem/destino.
// As variáveis seguem o padrão POSTGRES_* já usado pelo ambiente do data warehouse.
type Database struct {
	DSN           string `mapstructure:"-"`
	Driver        string `mapstructure:"database_driver"`
	Host          string `mapstructure:"postgres_host"`
	ContainerName string `mapstructure:"postgres_container_name"`
	Port          string `mapstructure:"postgres_port"`
	Name          string `mapstructure:"postgres_dw_db"`
	User          string `mapstructure:"postgres_user"`
	Password      string `mapstructure:"postgres_password"`
	SSLMode       string `mapstructure:"postgres_sslmode"`
	SQLitePath    string `mapstructure:"sqlite_path"`
}

type Source struct {
	Schema string `mapstructure:"source_schema"`
	Table  string `mapstructure:"source_table"`
}

type Sink struct {
	BatchSize int `mapstructure:"sink_batch_size"`
}

type Analysis struct {
	ChurnThresholdDays int `mapstructure:"churn_threshold_days"`
}

// Job representa a política de execução aplicada pelo agendador externo ao núcleo
type Job struct {
	Timeout     time.Duration `mapstructure:"job_timeout"`
	Retries     int           `mapstructure:"job_retries"`
	RetryDelay  time.Duration `mapstructure:"job_retry_delay"`
	Cron        string        `mapstructure:"job_cron"`
	CronEnabled bool          `mapstructure:"job_cron_enabled"`
}

type Metrics struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	JobName        string `mapstructure:"metrics_job_name"`
}

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TIMEZONE", "UTC")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("POSTGRES_HOST", "")
	viper.SetDefault("POSTGRES_CONTAINER_NAME", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_DW_DB", "warehouse")
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("SQLITE_PATH", "retail.db")

	viper.SetDefault("SOURCE_SCHEMA", "public")
	viper.SetDefault("SOURCE_TABLE", "retail")

	viper.SetDefault("SINK_BATCH_SIZE", 1000)

	viper.SetDefault("CHURN_THRESHOLD_DAYS", 90)

	// 60 minutos por tentativa e nova tentativa após 5 minutos
	viper.SetDefault("JOB_TIMEOUT", "60m")
	viper.SetDefault("JOB_RETRIES", 1)
	viper.SetDefault("JOB_RETRY_DELAY", "5m")
	viper.SetDefault("JOB_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("JOB_CRON_ENABLED", false)

	viper.SetDefault("PUSHGATEWAY_URL", "")
	viper.SetDefault("METRICS_JOB_NAME", "retail_analysis")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando apenas variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	config := &Config{}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// BuildDSN monta a string de conexão de acordo com o driver configurado
func BuildDSN(db Database) string {
	if db.Driver == DriverSQLite {
		return db.SQLitePath
	}

	host := db.Host
	if host == "" {
		host = db.ContainerName
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   fmt.Sprintf("%s:%s", host, db.Port),
		Path:   "/" + db.Name,
	}

	if db.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": []string{db.SSLMode}}.Encode()
	}

	return dsn.String()
}

// Validate verifica combinações de configuração que impediriam a execução
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: driver de banco não suportado: %q", domain.ErrInvalidConfig, c.Database.Driver)
	}

	if strings.TrimSpace(c.Source.Table) == "" {
		return fmt.Errorf("%w: SOURCE_TABLE não pode ser vazio", domain.ErrInvalidConfig)
	}

	if c.Sink.BatchSize <= 0 {
		return fmt.Errorf("%w: SINK_BATCH_SIZE deve ser positivo, recebido %d", domain.ErrInvalidConfig, c.Sink.BatchSize)
	}

	if c.Analysis.ChurnThresholdDays < 0 {
		return fmt.Errorf("%w: CHURN_THRESHOLD_DAYS não pode ser negativo", domain.ErrInvalidConfig)
	}

	if c.Job.Retries < 0 {
		return fmt.Errorf("%w: JOB_RETRIES não pode ser negativo", domain.ErrInvalidConfig)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("%w: TIMEZONE inválido %q: %v", domain.ErrInvalidConfig, c.App.Timezone, err)
	}

	return nil
}

// Location retorna o fuso usado para interpretar InvoiceDate e a data corrente
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
