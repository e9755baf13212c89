package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"school_projection/pkg/core/scenario"

	"github.com/shopspring/decimal"
)

const jsonScenario = `{
  "start_year": 2023,
  "end_year": 2052,
  "curricula": [
    {
      "type": "FR",
      "capacity": 1000,
      "tuition_base": "45000.50",
      "tuition_base_year": 2023,
      "cpi_frequency": 2,
      "enrollment": [{"year": 2023, "students": 800}]
    }
  ],
  "rent": {
    "model": "FIXED_ESCALATION",
    "fixed_escalation": {"base_rent": "8000000", "escalation_rate": "0.04", "start_year": 2028}
  },
  "staff_cost": {"base": "25000000", "cpi_rate": "0.03", "cpi_frequency": 2, "base_year": 2028},
  "opex": [{"name": "utilities", "is_fixed": true, "fixed_amount": "3000000"}],
  "settings": {"cpi_rate": "0.03", "discount_rate": "0.08"}
}`

const hjsonScenario = `{
  // lease and tuition assumptions for the base case
  start_year: 2023
  end_year: 2052
  curricula: [
    {
      type: FR
      capacity: 1000
      tuition_base: "45000.50"
      tuition_base_year: 2023
      cpi_frequency: 2
      enrollment: [{year: 2023, students: 800}]
    }
  ]
  rent: {
    model: FIXED_ESCALATION
    fixed_escalation: {base_rent: "8000000", escalation_rate: "0.04", start_year: 2028}
  }
  staff_cost: {base: "25000000", cpi_rate: "0.03", cpi_frequency: 2, base_year: 2028}
  opex: [{name: "utilities", is_fixed: true, fixed_amount: "3000000"}]
  settings: {cpi_rate: "0.03", discount_rate: "0.08"}
}`

const yamlScenario = `start_year: 2023
end_year: 2052
curricula:
  - type: FR
    capacity: 1000
    tuition_base: "45000.50"
    tuition_base_year: 2023
    cpi_frequency: 2
    enrollment:
      - year: 2023
        students: 800
rent:
  model: FIXED_ESCALATION
  fixed_escalation:
    base_rent: "8000000"
    escalation_rate: "0.04"
    start_year: 2028
staff_cost:
  base: "25000000"
  cpi_rate: "0.03"
  cpi_frequency: 2
  base_year: 2028
opex:
  - name: utilities
    is_fixed: true
    fixed_amount: "3000000"
settings:
  cpi_rate: "0.03"
  discount_rate: "0.08"
`

func TestLoadFormatsAgree(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"base.json":  jsonScenario,
		"base.hjson": hjsonScenario,
		"base.yaml":  yamlScenario,
	}

	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}

		in, err := scenario.Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if in.StartYear != 2023 || in.EndYear != 2052 {
			t.Errorf("%s: range [%d, %d], want [2023, 2052]", name, in.StartYear, in.EndYear)
		}
		if len(in.Curricula) != 1 {
			t.Fatalf("%s: curricula = %d, want 1", name, len(in.Curricula))
		}
		if !in.Curricula[0].TuitionBase.Equal(decimal.RequireFromString("45000.50")) {
			t.Errorf("%s: tuition base = %s, want 45000.50", name, in.Curricula[0].TuitionBase)
		}
		if in.Rent.FixedEscalation == nil {
			t.Fatalf("%s: fixed escalation params not decoded", name)
		}
		if !in.Rent.FixedEscalation.EscalationRate.Equal(decimal.RequireFromString("0.04")) {
			t.Errorf("%s: escalation rate = %s, want 0.04", name, in.Rent.FixedEscalation.EscalationRate)
		}
		if !in.Settings.DiscountRate.Equal(decimal.RequireFromString("0.08")) {
			t.Errorf("%s: discount rate = %s, want 0.08", name, in.Settings.DiscountRate)
		}
		if len(in.Opex) != 1 || !in.Opex[0].IsFixed {
			t.Errorf("%s: opex schedule not decoded: %+v", name, in.Opex)
		}
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.toml")
	if err := os.WriteFile(path, []byte("start_year = 2023"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := scenario.Load(path); err == nil {
		t.Fatal("expected unsupported-format error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := scenario.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected read error for a missing file")
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := scenario.ParseJSON([]byte(`{"start_year":`)); err == nil {
		t.Fatal("expected parse error")
	}
}
