package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	reconciliationMocks "hotelier/internal/domains/reconciliation/mocks"
	"hotelier/internal/domains/reconciliation/scheduler"
	"hotelier/shared/clock"
)

func TestNextRun(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name       string
		now        time.Time
		anchorHour int
		want       time.Time
	}{
		{
			name:       "before the anchor runs today",
			now:        time.Date(2025, 3, 10, 8, 15, 0, 0, loc),
			anchorHour: 19,
			want:       time.Date(2025, 3, 10, 19, 0, 0, 0, loc),
		},
		{
			name:       "exactly at the anchor runs tomorrow",
			now:        time.Date(2025, 3, 10, 19, 0, 0, 0, loc),
			anchorHour: 19,
			want:       time.Date(2025, 3, 11, 19, 0, 0, 0, loc),
		},
		{
			name:       "past the anchor runs tomorrow",
			now:        time.Date(2025, 3, 10, 22, 45, 0, 0, loc),
			anchorHour: 19,
			want:       time.Date(2025, 3, 11, 19, 0, 0, 0, loc),
		},
		{
			name:       "midnight anchor",
			now:        time.Date(2025, 3, 10, 0, 0, 1, 0, loc),
			anchorHour: 0,
			want:       time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scheduler.NextRun(tt.now, tt.anchorHour))
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := reconciliationMocks.NewMockReconciliation(ctrl)

	cfg := &config.Config{}
	cfg.Hotel.Reconciliation.Enable = true
	cfg.Hotel.Reconciliation.AnchorHour = 19
	cfg.Hotel.Reconciliation.BudgetSeconds = 300

	// Frozen well before the anchor so the loop never fires during the
	// test.
	clk := clock.Fixed(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	sched := scheduler.New(mockSvc, cfg, clk)

	sched.Start(context.Background())
	sched.Start(context.Background())

	sched.Stop()
	sched.Stop()

	// The scheduler can be restarted after a stop.
	sched.Start(context.Background())
	sched.Stop()
}

func TestScheduler_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := reconciliationMocks.NewMockReconciliation(ctrl)

	cfg := &config.Config{}
	cfg.Hotel.Reconciliation.Enable = false

	sched := scheduler.New(mockSvc, cfg, clock.New())

	sched.Start(context.Background())
	sched.Stop()
}
