package analytics

import (
	"testing"
)

func TestRate(t *testing.T) {
	a := &Analytics{}

	tests := []struct {
		name  string
		ok    int
		total int
		want  float64
	}{
		{
			name:  "zero total yields zero not NaN",
			ok:    0,
			total: 0,
			want:  0,
		},
		{
			name:  "half",
			ok:    5,
			total: 10,
			want:  0.5,
		},
		{
			name:  "all ok",
			ok:    10,
			total: 10,
			want:  1.0,
		},
		{
			name:  "none ok",
			ok:    0,
			total: 10,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Rate(tt.ok, tt.total); got != tt.want {
				t.Errorf("Rate(%d, %d) = %v, want %v", tt.ok, tt.total, got, tt.want)
			}
		})
	}
}

func TestRound4(t *testing.T) {
	a := &Analytics{}

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "no change needed", in: 0.8, want: 0.8},
		{name: "fifth digit rounds up", in: 0.123456, want: 0.1235},
		{name: "fifth digit rounds down", in: 0.123449, want: 0.1234},
		{name: "exact one", in: 1.0, want: 1.0},
		{name: "zero", in: 0, want: 0},
		{name: "seventy eight of eighty", in: 78.0 / 80.0, want: 0.975},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Round4(tt.in); got != tt.want {
				t.Errorf("Round4(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimingPercentiles(t *testing.T) {
	a := &Analytics{}

	tests := []struct {
		name   string
		values []int64
		p50    int64
		p95    int64
		p99    int64
	}{
		{
			name:   "empty yields zeros",
			values: nil,
			p50:    0, p95: 0, p99: 0,
		},
		{
			name:   "single value everywhere",
			values: []int64{500},
			p50:    500, p95: 500, p99: 500,
		},
		{
			name:   "two values, p50 rounds to lower rank",
			values: []int64{100, 200},
			p50:    100, p95: 200, p99: 200,
		},
		{
			name:   "three values sorted internally",
			values: []int64{300, 100, 200},
			p50:    200, p95: 300, p99: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.TimingPercentiles(tt.values)
			if got.P50 != tt.p50 || got.P95 != tt.p95 || got.P99 != tt.p99 {
				t.Errorf("TimingPercentiles(%v) = {%d %d %d}, want {%d %d %d}",
					tt.values, got.P50, got.P95, got.P99, tt.p50, tt.p95, tt.p99)
			}
		})
	}
}

func TestTimingPercentiles_HundredValues(t *testing.T) {
	a := &Analytics{}

	values := make([]int64, 100)
	for i := range values {
		values[i] = int64(i + 1)
	}

	got := a.TimingPercentiles(values)
	if got.P50 != 51 {
		t.Errorf("P50 = %d, want 51", got.P50)
	}
	if got.P95 != 95 {
		t.Errorf("P95 = %d, want 95", got.P95)
	}
	if got.P99 != 99 {
		t.Errorf("P99 = %d, want 99", got.P99)
	}
}

func TestTimingPercentiles_DoesNotMutateInput(t *testing.T) {
	a := &Analytics{}

	values := []int64{300, 100, 200}
	a.TimingPercentiles(values)

	if values[0] != 300 || values[1] != 100 || values[2] != 200 {
		t.Errorf("input slice reordered: %v", values)
	}
}
