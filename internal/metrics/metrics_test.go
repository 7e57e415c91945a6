package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_ExposesSignalMetrics(t *testing.T) {
	m := NewMetrics()
	m.SignalsTotal.WithLabelValues("EURUSD", "UP").Inc()
	m.FailuresTotal.WithLabelValues("unsupported").Inc()
	m.Confidence.Observe(72)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`pipsignal_signals_total{direction="UP",instrument="EURUSD"} 1`,
		`pipsignal_signal_failures_total{reason="unsupported"} 1`,
		`pipsignal_signal_confidence_count 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
