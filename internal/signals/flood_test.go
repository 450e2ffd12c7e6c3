package signals

import (
	"testing"

	"github.com/blacklandcg/scoutiq/internal/contracts"
)

func TestZoneRisk(t *testing.T) {
	tests := []struct {
		zone string
		want contracts.FloodRisk
	}{
		{"X", contracts.FloodLow},
		{"x", contracts.FloodLow},
		{"AREA OF MINIMAL FLOOD HAZARD", contracts.FloodLow},
		{"ZONE X", contracts.FloodLow},
		{"AE", contracts.FloodMedium},
		{"A", contracts.FloodMedium},
		{"AO", contracts.FloodMedium},
		{"AH", contracts.FloodMedium},
		{"0.2% ANNUAL CHANCE", contracts.FloodMedium},
		{"500 YEAR", contracts.FloodMedium},
		// FLOODWAY contains "A", so the Medium tier claims it first.
		{"FLOODWAY", contracts.FloodMedium},
		{"VE", contracts.FloodHigh},
		{"HIGH RISK", contracts.FloodHigh},
		{"D", contracts.FloodUnknown},
		{"ZONE B", contracts.FloodUnknown},
	}

	for _, tt := range tests {
		if got := ZoneRisk(tt.zone); got != tt.want {
			t.Errorf("ZoneRisk(%q) = %v, want %v", tt.zone, got, tt.want)
		}
	}
}

func TestFloodCalculator_Geometric(t *testing.T) {
	age35 := 35
	age45 := 45

	tests := []struct {
		name string
		rec  contracts.PropertyRecord
		age  *int
		want contracts.FloodRisk
	}{
		{
			name: "near center high value",
			rec: contracts.PropertyRecord{
				"property_latitude":      30.27,
				"property_longitude":     -97.74,
				"tax_market_value_total": 600000.0,
			},
			want: contracts.FloodHigh,
		},
		{
			name: "near center mid value",
			rec: contracts.PropertyRecord{
				"property_latitude":      30.27,
				"property_longitude":     -97.74,
				"tax_market_value_total": 300000.0,
			},
			want: contracts.FloodMedium,
		},
		{
			name: "near center low value",
			rec: contracts.PropertyRecord{
				"property_latitude":      30.27,
				"property_longitude":     -97.74,
				"tax_market_value_total": 150000.0,
			},
			want: contracts.FloodLow,
		},
		{
			name: "inner ring old building",
			rec: contracts.PropertyRecord{
				"property_latitude":  30.34,
				"property_longitude": -97.74,
			},
			age:  &age35,
			want: contracts.FloodMedium,
		},
		{
			name: "inner ring newer building",
			rec: contracts.PropertyRecord{
				"property_latitude":  30.34,
				"property_longitude": -97.74,
			},
			want: contracts.FloodLow,
		},
		{
			name: "far from center",
			rec: contracts.PropertyRecord{
				"property_latitude":      31.0,
				"property_longitude":     -97.74,
				"tax_market_value_total": 900000.0,
			},
			want: contracts.FloodLow,
		},
		{
			name: "no coordinates old building",
			rec:  contracts.PropertyRecord{},
			age:  &age45,
			want: contracts.FloodMedium,
		},
		{
			name: "sign-flipped longitude old building",
			rec: contracts.PropertyRecord{
				"property_latitude":  30.30,
				"property_longitude": 97.74,
			},
			age:  &age45,
			want: contracts.FloodMedium,
		},
		{
			name: "negative latitude expensive",
			rec: contracts.PropertyRecord{
				"property_latitude":      -30.27,
				"property_longitude":     -97.74,
				"tax_market_value_total": 1200000.0,
			},
			want: contracts.FloodHigh,
		},
		{
			name: "no coordinates expensive",
			rec: contracts.PropertyRecord{
				"tax_market_value_total": 1200000.0,
			},
			want: contracts.FloodHigh,
		},
		{
			name: "no coordinates default",
			rec:  contracts.PropertyRecord{},
			want: contracts.FloodLow,
		},
	}

	calc := NewFloodCalculator(FloodPolicyGeometric)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := contracts.DerivedSignals{PropertyAge: tt.age}
			calc.Calculate(tt.rec, &out)
			if out.FloodRisk != tt.want {
				t.Errorf("FloodRisk = %v, want %v", out.FloodRisk, tt.want)
			}
		})
	}
}

func TestFloodCalculator_Policies(t *testing.T) {
	withZone := contracts.PropertyRecord{
		"flood_zone":             "AE",
		"property_latitude":      31.0,
		"property_longitude":     -97.74,
		"tax_market_value_total": 100000.0,
	}
	noZone := contracts.PropertyRecord{
		"property_latitude":      31.0,
		"property_longitude":     -97.74,
		"tax_market_value_total": 100000.0,
	}

	tests := []struct {
		name   string
		policy FloodPolicy
		rec    contracts.PropertyRecord
		want   contracts.FloodRisk
	}{
		{"auto uses zone when present", FloodPolicyAuto, withZone, contracts.FloodMedium},
		{"auto falls back to geometric", FloodPolicyAuto, noZone, contracts.FloodLow},
		{"zone only, no zone is unknown", FloodPolicyZone, noZone, contracts.FloodUnknown},
		{"geometric ignores zone", FloodPolicyGeometric, withZone, contracts.FloodLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := contracts.DerivedSignals{}
			NewFloodCalculator(tt.policy).Calculate(tt.rec, &out)
			if out.FloodRisk != tt.want {
				t.Errorf("FloodRisk = %v, want %v", out.FloodRisk, tt.want)
			}
		})
	}
}
