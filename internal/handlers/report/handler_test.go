package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/infras/otel/mocks"
	reportMocks "hotelier/internal/domains/report/mocks"
	reportDto "hotelier/internal/domains/report/model/dto"
	"hotelier/internal/handlers/report"
	"hotelier/shared/clock"
	"hotelier/shared/constant"
)

func TestReportHandler_GetDailyReport(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	newHandler := func(t *testing.T) (report.Handler, *reportMocks.MockReport) {
		t.Helper()

		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		svc := reportMocks.NewMockReport(ctrl)

		return report.New(svc, clock.Fixed(now), mocks.NewOtel()), svc
	}

	t.Run("defaults to yesterday", func(t *testing.T) {
		handler, svc := newHandler(t)

		svc.EXPECT().
			GetDaily(gomock.Any(), now.AddDate(0, 0, -1)).
			Return(reportDto.DailyReportResponse{Date: "2025-03-09"}, nil)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/reports/daily", nil)

		handler.GetDailyReport(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("explicit date wins", func(t *testing.T) {
		handler, svc := newHandler(t)

		svc.EXPECT().
			GetDaily(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, date time.Time) (reportDto.DailyReportResponse, error) {
				assert.Equal(t, "2025-03-01", date.Format(constant.DateOnlyFormat))
				return reportDto.DailyReportResponse{Date: "2025-03-01"}, nil
			})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/reports/daily?date=2025-03-01", nil)

		handler.GetDailyReport(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		handler, _ := newHandler(t)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/v1/reports/daily?date=03-10-2025", nil)

		handler.GetDailyReport(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
