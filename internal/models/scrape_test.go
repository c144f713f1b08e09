package models

import "testing"

func TestScrapeRunAggregate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"all succeed", []string{SourceSuccess, SourceSuccess}, RunSuccess},
		{"mixed", []string{SourceSuccess, SourceFailed}, RunPartialSuccess},
		{"all fail", []string{SourceFailed, SourceFailed}, RunFailed},
		{"no sources", nil, RunSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &ScrapeRun{}
			for _, s := range tt.statuses {
				run.Sources = append(run.Sources, SourceResult{Status: s})
			}
			run.Aggregate()
			if run.Status != tt.want {
				t.Errorf("expected %s, got %s", tt.want, run.Status)
			}
		})
	}
}
