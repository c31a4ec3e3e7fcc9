package database

import "testing"

func TestPoolDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Pool
		want Pool
	}{
		{"zero value", Pool{}, Pool{MaxOpen: 25, MaxIdle: 25, LifeMins: 30}},
		{"tuned", Pool{MaxOpen: 50, MaxIdle: 10, LifeMins: 5}, Pool{MaxOpen: 50, MaxIdle: 10, LifeMins: 5}},
		{"idle follows open", Pool{MaxOpen: 8}, Pool{MaxOpen: 8, MaxIdle: 8, LifeMins: 30}},
		{"negatives clamped", Pool{MaxOpen: -1, MaxIdle: -1, LifeMins: -1}, Pool{MaxOpen: 25, MaxIdle: 25, LifeMins: 30}},
	}
	for _, tt := range tests {
		if got := tt.in.orDefaults(); got != tt.want {
			t.Errorf("%s: orDefaults() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}
