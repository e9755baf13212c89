package projection_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	apiprojection "school_projection/pkg/api/projection"
	"school_projection/pkg/core/period"
)

func scenarioJSON() string {
	var enroll strings.Builder
	for y := period.HorizonStart; y <= period.HorizonEnd; y++ {
		if y > period.HorizonStart {
			enroll.WriteString(",")
		}
		enroll.WriteString(`{"year":` + strconv.Itoa(y) + `,"students":500}`)
	}

	return `{
	  "start_year": 2023,
	  "end_year": 2052,
	  "curricula": [{
	    "type": "FR",
	    "capacity": 1000,
	    "tuition_base": "45000",
	    "tuition_base_year": 2023,
	    "cpi_frequency": 2,
	    "enrollment": [` + enroll.String() + `]
	  }],
	  "rent": {
	    "model": "FIXED_ESCALATION",
	    "fixed_escalation": {"base_rent": "8000000", "escalation_rate": "0.04", "start_year": 2028}
	  },
	  "staff_cost": {"base": "12000000", "cpi_rate": "0.03", "cpi_frequency": 2, "base_year": 2028},
	  "opex": [{"name": "utilities", "is_fixed": true, "fixed_amount": "2000000"}],
	  "actuals": [
	    {"year": 2023, "revenue": "20000000", "staff_cost": "11000000", "rent": "6000000", "opex": "1900000", "capex": "0"},
	    {"year": 2024, "revenue": "21000000", "staff_cost": "11500000", "rent": "6200000", "opex": "1950000", "capex": "0"}
	  ],
	  "transition": [
	    {"year": 2025, "target_enrollment": 600, "staff_cost_base": "11800000"}
	  ],
	  "settings": {
	    "cpi_rate": "0.03",
	    "discount_rate": "0.08",
	    "zakat_rate": "0.025",
	    "debt_rate": "0.06",
	    "deposit_rate": "0.02",
	    "depreciation_rate": "0.05",
	    "rent_adjustment_pct": "5",
	    "opening_cash": "1000000"
	  }
	}`
}

func postCalculate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/projection/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	apiprojection.HandleCalculate(rec, req)
	return rec
}

func TestHandleCalculateOK(t *testing.T) {
	rec := postCalculate(t, `{"scenario": `+scenarioJSON()+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp apiprojection.CalculateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result == nil {
		t.Fatal("response carries no result")
	}
	if len(resp.Result.Years) != period.HorizonYears {
		t.Errorf("years = %d, want %d", len(resp.Result.Years), period.HorizonYears)
	}
	if !resp.Result.Converged {
		t.Error("expected a converged projection")
	}
	if resp.RunID != "" {
		t.Errorf("run persisted without persist flag: %s", resp.RunID)
	}
}

func TestHandleCalculateMalformedJSON(t *testing.T) {
	rec := postCalculate(t, `{"scenario":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCalculateMissingScenario(t *testing.T) {
	rec := postCalculate(t, `{"persist": false}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
		t.Errorf("body without validation code: %s", rec.Body.String())
	}
}

func TestHandleCalculateInvalidScenario(t *testing.T) {
	bad := strings.Replace(`{"scenario": `+scenarioJSON()+`}`, `"start_year": 2023`, `"start_year": 2019`, 1)
	rec := postCalculate(t, bad)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
		t.Errorf("body without validation code: %s", rec.Body.String())
	}
}

func TestHandleCalculateMissingActuals(t *testing.T) {
	bad := strings.Replace(`{"scenario": `+scenarioJSON()+`}`, `"actuals": [
	    {"year": 2023, "revenue": "20000000", "staff_cost": "11000000", "rent": "6000000", "opex": "1900000", "capex": "0"},
	    {"year": 2024, "revenue": "21000000", "staff_cost": "11500000", "rent": "6200000", "opex": "1950000", "capex": "0"}
	  ]`, `"actuals": []`, 1)
	rec := postCalculate(t, bad)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "HISTORICAL_DATA_NOT_FOUND") {
		t.Errorf("body without not-found code: %s", rec.Body.String())
	}
}

func TestHandleCalculateMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/projection/calculate", nil)
	rec := httptest.NewRecorder()
	apiprojection.HandleCalculate(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHandleCalculateCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/projection/calculate", nil)
	rec := httptest.NewRecorder()
	apiprojection.HandleCalculate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS origin header missing on preflight")
	}
}

func TestHandleGetRunWithoutDatabase(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/projection/run?id=whatever", nil)
	rec := httptest.NewRecorder()
	apiprojection.HandleGetRun(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when no pool is configured", rec.Code)
	}
}
