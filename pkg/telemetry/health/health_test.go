package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker_Readiness(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   string
	}{
		{
			name: "no checks",
			want: StatusReady,
		},
		{
			name: "all pass",
			checks: map[string]CheckFunc{
				"storage": func(context.Context) error { return nil },
				"input":   func(context.Context) error { return nil },
			},
			want: StatusReady,
		},
		{
			name: "one fails",
			checks: map[string]CheckFunc{
				"storage": func(context.Context) error { return nil },
				"input":   func(context.Context) error { return errors.New("line 3: missing ']'") },
			},
			want: StatusNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(time.Second)
			for name, check := range tt.checks {
				c.RegisterCheck(name, check)
			}

			report := c.Readiness(context.Background())
			if report.Status != tt.want {
				t.Errorf("Status = %q, want %q", report.Status, tt.want)
			}
			if len(report.Checks) != len(tt.checks) {
				t.Errorf("len(Checks) = %d, want %d", len(report.Checks), len(tt.checks))
			}
		})
	}
}

func TestChecker_Timeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	report := c.Readiness(context.Background())
	result := report.Checks["slow"]
	if result.Status != StatusUnhealthy || result.Message != "check timed out" {
		t.Errorf("slow check = %+v, want timed out", result)
	}
}

func TestChecker_RegisterUnregister(t *testing.T) {
	c := New(0)
	c.RegisterCheck("b", func(context.Context) error { return nil })
	c.RegisterCheck("a", func(context.Context) error { return nil })

	names := c.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}

	c.UnregisterCheck("a")
	if names := c.Names(); len(names) != 1 {
		t.Errorf("Names() after unregister = %v", names)
	}
}

func TestHandlers(t *testing.T) {
	c := New(time.Second)
	failing := errors.New("store closed")
	c.RegisterCheck("storage", func(context.Context) error { return failing })

	mux := http.NewServeMux()
	Register(mux, c, "1.2.3")

	tests := []struct {
		name       string
		method     string
		path       string
		wantCode   int
		wantStatus string
	}{
		{"liveness", http.MethodGet, LivenessPath, http.StatusOK, StatusOK},
		{"readiness failing", http.MethodGet, ReadinessPath, http.StatusServiceUnavailable, StatusNotReady},
		{"post rejected", http.MethodPost, LivenessPath, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantStatus == "" {
				return
			}

			var report Report
			if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if report.Status != tt.wantStatus || report.Version != "1.2.3" {
				t.Errorf("report = %+v", report)
			}
		})
	}
}

func TestHandlers_Head(t *testing.T) {
	c := New(time.Second)
	rec := httptest.NewRecorder()
	c.LivenessHandler("dev")(rec, httptest.NewRequest(http.MethodHead, LivenessPath, nil))

	if rec.Code != http.StatusOK {
		t.Errorf("code = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD body = %q, want empty", rec.Body.String())
	}
}
