package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	SetupTestLogger()
	os.Exit(m.Run())
}

func TestSetupTestLogger(t *testing.T) {
	SetupTestLogger()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.NotNil(t, L)
}

func captureLogger(buf *bytes.Buffer) *logger {
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return &logger{entry: logrus.NewEntry(base)}
}

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestLogger_FiltersFieldsInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var buf bytes.Buffer
	l := captureLogger(&buf)

	ctx, id := WithCorrelationID(context.Background())
	l.WithContext(ctx).
		WithFields(Fields{"table": "rfm_df", "rows": 10, "irrelevante": "x"}).
		WithField("outro", 1).
		Info("Tabela gravada")

	out := buf.String()
	assert.Contains(t, out, "run_id="+id)
	assert.Contains(t, out, "table=rfm_df")
	assert.Contains(t, out, "rows=10")
	assert.NotContains(t, out, "irrelevante")
	assert.NotContains(t, out, "outro")
}

func TestLogger_KeepsAllFieldsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	var buf bytes.Buffer
	l := captureLogger(&buf)

	l.WithFields(Fields{"stage": "write", "extra": "y"}).Info("ok")

	out := buf.String()
	assert.Contains(t, out, "stage=write")
	assert.Contains(t, out, "extra=y")
}
