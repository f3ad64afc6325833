package render

import (
	"time"

	"github.com/san-kum/escapetime/internal/mandel"
)

// Metric accumulates a statistic over the escape counts of one render.
type Metric interface {
	Name() string
	Observe(count int)
	Value() float64
	Reset()
}

// Observer is notified after each completed row.
type Observer interface {
	OnRow(row, height int)
}

type ObserverFunc func(row, height int)

func (f ObserverFunc) OnRow(row, height int) { f(row, height) }

type Result struct {
	Params       mandel.Params
	Path         string
	BytesWritten int64
	Pixels       int
	InSet        int
	Elapsed      time.Duration
	Metrics      map[string]float64
}
