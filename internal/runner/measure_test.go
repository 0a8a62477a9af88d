package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/executor"
	"github.com/jonesrussell/queryvalidator/internal/runner"
	runnerMock "github.com/jonesrussell/queryvalidator/testutils/mocks/runner"
)

var record = domain.QueryRecord{Origin: "docs/a.md", Title: "Revenue by day", SQL: "SELECT 1;"}

func okNs(ns int64) executor.Result { return executor.Result{OK: true, LatencyNs: &ns} }

func failed(msg string) executor.Result { return executor.Result{OK: false, Error: msg} }

func TestMeasure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []executor.Result
		wantOK  bool
		wantErr string
		cold    *float64
		hot     *float64
	}{
		{
			name:    "cold failure",
			results: []executor.Result{failed("unknown column")},
			wantErr: "unknown column",
		},
		{
			name:    "success without timing",
			results: []executor.Result{{OK: true}},
			wantOK:  true,
		},
		{
			name:    "fast query runs once",
			results: []executor.Result{okNs(12_000_000)},
			wantOK:  true,
			cold:    ptr(12),
		},
		{
			name:    "just below the slow threshold runs once",
			results: []executor.Result{okNs(999_999_000)},
			wantOK:  true,
			cold:    ptr(999.999),
		},
		{
			name:    "slow threshold triggers hot run",
			results: []executor.Result{okNs(1_000_000_000), okNs(20_000_000)},
			wantOK:  true,
			cold:    ptr(1000),
			hot:     ptr(20),
		},
		{
			name:    "slow cold then slow hot",
			results: []executor.Result{okNs(3_200_000_000), okNs(1_800_000_000)},
			wantOK:  true,
			cold:    ptr(3200),
			hot:     ptr(1800),
		},
		{
			name:    "hot failure falls back to cold",
			results: []executor.Result{okNs(2_600_000_000), failed("Timeout after 60s")},
			wantOK:  true,
			cold:    ptr(2600),
		},
		{
			name:    "hot without timing falls back to cold",
			results: []executor.Result{okNs(1_500_000_000), {OK: true}},
			wantOK:  true,
			cold:    ptr(1500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			exec := runnerMock.NewMockExecutor(ctrl)
			calls := make([]any, 0, len(tt.results))
			for _, res := range tt.results {
				calls = append(calls, exec.EXPECT().Execute(gomock.Any(), record.SQL).Return(res))
			}
			gomock.InOrder(calls...)

			got := runner.Measure(context.Background(), exec, domain.DefaultThresholds(), record)

			assert.Equal(t, record, got.Record)
			assert.Equal(t, tt.wantOK, got.OK)
			assert.Equal(t, tt.wantErr, got.ErrorMessage())
			assertLatency(t, tt.cold, got.ColdLatencyMs)
			assertLatency(t, tt.hot, got.HotLatencyMs)
			if !got.OK {
				require.NotNil(t, got.Error)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func assertLatency(t *testing.T, want, got *float64) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.InDelta(t, *want, *got, 1e-9)
}
