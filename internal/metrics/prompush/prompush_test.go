package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-analytics-batch/internal/metrics"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	require.NotNil(t, m.GetCounter())
	return m.GetCounter().GetValue()
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "URL vazia retorna erro", jobName: "x", gatewayURL: "", wantErr: true},
		{name: "Job vazio usa o padrão", jobName: "", gatewayURL: "http://pushgateway:9091", wantJobName: defaultJobName},
		{name: "Job explícito é mantido", jobName: "retail_nightly", gatewayURL: "http://pushgateway:9091", wantJobName: "retail_nightly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, b)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantJobName, b.jobName)
			assert.Equal(t, tt.gatewayURL, b.gatewayURL)
		})
	}
}

func TestBackend_IncCounter(t *testing.T) {
	b, err := NewBackend("retail", "http://example.com")
	require.NoError(t, err)

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"job": "retail", "step": "read", "status": metrics.StatusSuccess})
	b.IncCounter(metrics.StepTotal, 2, metrics.Labels{"job": "retail", "step": "read", "status": metrics.StatusSuccess})
	b.IncCounter(metrics.RecordsTotal, 541909, metrics.Labels{"job": "retail", "kind": "read"})
	b.IncCounter("desconhecida", 10, metrics.Labels{})

	assert.Equal(t, 3.0, counterValue(t, b.stepCounter.WithLabelValues("read", metrics.StatusSuccess)))
	assert.Equal(t, 541909.0, counterValue(t, b.recordCounter.WithLabelValues("read")))
	assert.Equal(t, 0.0, counterValue(t, b.recordCounter.WithLabelValues("written")))
}

func TestBackend_NilCollectors(t *testing.T) {
	b := &Backend{}

	assert.NotPanics(t, func() {
		b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "s", "status": "ok"})
		b.IncCounter(metrics.RecordsTotal, 1, metrics.Labels{"kind": "read"})
		b.ObserveHistogram(metrics.StepDurationSeconds, 1, metrics.Labels{})
	})
}

func TestBackend_Flush(t *testing.T) {
	type pushRequest struct {
		method  string
		path    string
		bodyLen int
	}

	reqCh := make(chan pushRequest, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)

		reqCh <- pushRequest{method: r.Method, path: r.URL.Path, bodyLen: len(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("retail_analysis", server.URL)
	require.NoError(t, err)

	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "write", "status": metrics.StatusSuccess})
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.25, metrics.Labels{"step": "write", "status": metrics.StatusSuccess})

	require.NoError(t, b.Flush())

	select {
	case got := <-reqCh:
		assert.Equal(t, http.MethodPut, got.method)
		assert.Equal(t, "/metrics/job/retail_analysis", got.path)
		assert.Greater(t, got.bodyLen, 0)
	default:
		t.Fatal("Flush não enviou nenhuma requisição ao Pushgateway")
	}
}

func TestBackend_FlushFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	b, err := NewBackend("retail_analysis", server.URL)
	require.NoError(t, err)

	assert.Error(t, b.Flush())
}
