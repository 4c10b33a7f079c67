package service

import (
	"time"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
	"github.com/kitbuilder587/zenserp-go/internal/metrics"
)

// observe оборачивает один вызов Zenserp метриками in-flight, длительности и исхода.
func observe(m *metrics.Metrics, endpoint string, call func() error) error {
	if m == nil {
		return call()
	}

	m.IncRequestsInFlight()
	defer m.DecRequestsInFlight()

	start := time.Now()
	err := call()
	m.RecordRequest(endpoint, domain.ErrorKind(err), time.Since(start))
	return err
}
