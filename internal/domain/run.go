package domain

import "time"

// TableWrite registra a gravação de uma tabela de resultado
type TableWrite struct {
	Table string
	Rows  int
}

// RunSummary resume uma execução completa do pipeline
type RunSummary struct {
	RunID       string
	StartedAt   time.Time
	CompletedAt time.Time
	RowsRead    int
	Writes      []TableWrite
}

func (s *RunSummary) RowsWritten() int {
	total := 0
	for _, w := range s.Writes {
		total += w.Rows
	}
	return total
}
