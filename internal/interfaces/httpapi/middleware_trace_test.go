package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "/healthz", want: false},
		{path: "/readyz", want: false},
		{path: "/metrics", want: false},
		{path: " /HEALTHZ ", want: false},
		{path: "/v1/competitions/PL/standings", want: true},
		{path: "/v1/matches/live", want: true},
		{path: "/internal/jobs/standings", want: true},
		{path: "/", want: true},
	}
	for _, tt := range tests {
		if got := shouldTraceRequest(tt.path); got != tt.want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", tt.path, got, tt.want)
		}
	}
}
