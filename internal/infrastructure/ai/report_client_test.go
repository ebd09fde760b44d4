package ai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/ai"
)

func request() ports.ReportRequest {
	return ports.ReportRequest{
		CompanyID:  "c-1",
		ReportType: "GRI",
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateReport_EnviaPeriodoYExtraeContenido(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai/generate-report", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"report_content":"# Informe GRI","metrics":{"energy_kwh":1250.5,"water_liters":300}}`))
	}))
	defer srv.Close()

	out, err := ai.NewReportClient(srv.URL, 5*time.Second).GenerateReport(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"company_id":  "c-1",
		"start_date":  "2024-01-01",
		"end_date":    "2024-03-31",
		"report_type": "GRI",
	}, got)
	assert.Equal(t, "# Informe GRI", out.ReportContent)
	assert.Equal(t, 1250.5, out.Metrics["energy_kwh"])
}

func TestGenerateReport_Errores(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"http 500 con detail", http.StatusInternalServerError, `{"detail":"sin métricas"}`, "sin métricas"},
		{"sin report_content", http.StatusOK, `{"metrics":{}}`, "report_content"},
		{"json inválido", http.StatusOK, `<html>`, "JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := ai.NewReportClient(srv.URL, 5*time.Second).GenerateReport(context.Background(), request())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestGenerateReport_RespetaCancelacion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := ai.NewReportClient(srv.URL, 5*time.Second).GenerateReport(ctx, request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout o cancelación")
}
