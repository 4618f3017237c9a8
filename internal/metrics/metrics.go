// Package metrics registra métricas operacionais das execuções do batch.
//
// O backend global começa como no-op, então chamar RecordStep/RecordRow é sempre
// seguro mesmo sem Pushgateway configurado. Backends concretos ficam em subpacotes
// (ver prompush).
package metrics

import (
	"sync"
	"time"
)

// Nomes das métricas publicadas
const (
	StepTotal           = "retail_batch_step_total"
	StepDurationSeconds = "retail_batch_step_duration_seconds"
	RecordsTotal        = "retail_batch_records_total"
)

// Status de uma etapa
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

type Labels map[string]string

type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush envia as métricas acumuladas, quando o backend precisa (ex.: Pushgateway)
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend instala um backend concreto. nil mantém o atual.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	mu.Lock()
	backend = b
	mu.Unlock()
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

func Flush() error {
	return current().Flush()
}

// RecordStep registra duração e sucesso/falha de uma etapa do pipeline
func RecordStep(job, step string, err error, d time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	b := current()
	b.IncCounter(StepTotal, 1, lbls)
	b.ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRow incrementa o contador de linhas por tipo ("read", "written")
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RecordsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
