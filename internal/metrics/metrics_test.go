package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/skychart/pkg/houses"
)

// counterValue sums every sample of the named family whose labels include want
func counterValue(t *testing.T, m *Collector, name string, want map[string]string) float64 {
	t.Helper()

	families, err := m.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metric
				}
			}
			if c := metric.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if h := metric.GetHistogram(); h != nil {
				total += float64(h.GetSampleCount())
			}
		}
	}
	return total
}

func TestRecordRequest(t *testing.T) {
	m := NewCollector()

	m.RecordRequest("/houses", 200, 3*time.Millisecond)
	m.RecordRequest("/houses", 200, 5*time.Millisecond)
	m.RecordRequest("/houses", 400, time.Millisecond)

	tests := []struct {
		name     string
		metric   string
		labels   map[string]string
		expected float64
	}{
		{"ok count", "skychart_requests_total", map[string]string{"route": "/houses", "code": "200"}, 2},
		{"bad request count", "skychart_requests_total", map[string]string{"route": "/houses", "code": "400"}, 1},
		{"histogram samples", "skychart_request_duration_seconds", map[string]string{"route": "/houses"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := counterValue(t, m, tt.metric, tt.labels); v != tt.expected {
				t.Errorf("%s%v = %v, expected %v", tt.metric, tt.labels, v, tt.expected)
			}
		})
	}
}

func TestHouseFallbackHook(t *testing.T) {
	m := NewCollector()
	engine := houses.NewEngine(houses.Options{}, nil).OnFallback(m.HouseFallback)

	a := houses.CalculateAngles(100, 23.44, 70)
	if _, err := engine.Cusps(houses.Placidus, a, 70, 23.44); err != nil {
		t.Fatalf("Cusps() error = %v, expected a Porphyry result", err)
	}

	if v := counterValue(t, m, "skychart_house_fallbacks_total", map[string]string{"system": "Placidus"}); v != 1 {
		t.Errorf("house_fallbacks_total{system=Placidus} = %v, expected 1", v)
	}
}

func TestHandler(t *testing.T) {
	m := NewCollector()
	m.RecordRateLimited()
	m.RecordPosition("Moon")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"skychart_rate_limited_total 1", `skychart_positions_total{body="Moon"} 1`, "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
