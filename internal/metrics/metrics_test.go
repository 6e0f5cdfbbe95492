package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue はGatherの結果から指定メトリクスのカウンタ値を取り出す。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			if len(mf.GetMetric()) != 1 {
				t.Fatalf("expected 1 metric for %s, got %d", name, len(mf.GetMetric()))
			}
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordLoginSuccess_IncrementsCounterWithMethodLabel はログイン成功カウンタが
// 認証方式ラベル付きで増加することを検証する。
func TestRecordLoginSuccess_IncrementsCounterWithMethodLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginSuccess("password")
	c.RecordLoginSuccess("password")
	c.RecordLoginSuccess("google")

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "taskboard_login_success_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
			}
			for _, m := range mf.GetMetric() {
				label := m.GetLabel()[0].GetValue()
				val := m.GetCounter().GetValue()
				switch label {
				case "password":
					if val != 2 {
						t.Errorf("login_success_total{auth_method=password} = %v, want 2", val)
					}
				case "google":
					if val != 1 {
						t.Errorf("login_success_total{auth_method=google} = %v, want 1", val)
					}
				default:
					t.Errorf("unexpected label value: %s", label)
				}
			}
		}
	}
	if !found {
		t.Error("taskboard_login_success_total metric not found")
	}
}

// TestRecordLoginFailure_IncrementsCounter はログイン失敗カウンタが増加することを検証する。
func TestRecordLoginFailure_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginFailure("password")

	if val := counterValue(t, reg, "taskboard_login_fail_total"); val != 1 {
		t.Errorf("login_fail_total = %v, want 1", val)
	}
}

// TestRecordHTTPRequest_IncrementsCounterAndObservesLatency はHTTPリクエストの記録で
// カウンタとヒストグラムの両方が更新されることを検証する。
func TestRecordHTTPRequest_IncrementsCounterAndObservesLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest(http.MethodGet, 200, 100*time.Millisecond)
	c.RecordHTTPRequest(http.MethodGet, 200, 2*time.Second)
	c.RecordHTTPRequest(http.MethodPost, 400, 50*time.Millisecond)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range metrics {
		switch mf.GetName() {
		case "taskboard_http_requests_total":
			if len(mf.GetMetric()) != 2 {
				t.Errorf("expected 2 label combinations, got %d", len(mf.GetMetric()))
			}
		case "taskboard_http_request_duration_seconds":
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 3 {
				t.Errorf("sample_count = %d, want 3", h.GetSampleCount())
			}
			// 合計は0.1 + 2.0 + 0.05 = 2.15秒
			if h.GetSampleSum() < 2.1 || h.GetSampleSum() > 2.2 {
				t.Errorf("sample_sum = %v, want ~2.15", h.GetSampleSum())
			}
		}
	}
}

// TestSetupMetricsRoute_ServesPrometheusFormat は/metricsエンドポイントが
// Prometheus形式でメトリクスを返すことを検証する。
func TestSetupMetricsRoute_ServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginSuccess("password")
	c.RecordHTTPRequest(http.MethodGet, 200, 10*time.Millisecond)

	handler := SetupMetricsRoute(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	expectedMetrics := []string{
		"taskboard_http_requests_total",
		"taskboard_http_request_duration_seconds",
		"taskboard_login_success_total",
	}
	for _, metric := range expectedMetrics {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}

// TestMultipleCollectors_IndependentRegistries は異なるレジストリで独立に動作することを検証する。
func TestMultipleCollectors_IndependentRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()
	c1 := NewCollector(reg1)
	c2 := NewCollector(reg2)

	c1.RecordLoginFailure("password")
	c2.RecordLoginFailure("password")
	c2.RecordLoginFailure("password")

	if val := counterValue(t, reg1, "taskboard_login_fail_total"); val != 1 {
		t.Errorf("reg1 login_fail = %v, want 1", val)
	}
	if val := counterValue(t, reg2, "taskboard_login_fail_total"); val != 2 {
		t.Errorf("reg2 login_fail = %v, want 2", val)
	}
}
