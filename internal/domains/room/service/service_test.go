package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	roomMocks "hotelier/internal/domains/room/mocks"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/service"
	cacheMocks "hotelier/shared/cache/mocks"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

func newRoomService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, mockCache, mocks.NewOtel()), repo, mockCache
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		RoomNumber:  "204",
		Type:        "Deluxe",
		NightlyRate: 120,
	}

	t.Run("success", func(t *testing.T) {
		svc, repo, mockCache := newRoomService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Create(context.Background(), req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("duplicate room number conflicts", func(t *testing.T) {
		svc, repo, _ := newRoomService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := newRoomService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("connection refused"))

		err := svc.Create(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	room := model.Room{
		ID:          "room-1",
		RoomNumber:  "204",
		Type:        model.RoomTypeDeluxe,
		NightlyRate: 120,
		IsAvailable: true,
	}

	t.Run("success", func(t *testing.T) {
		svc, repo, mockCache := newRoomService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), room.ID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, room.RoomNumber, res.RoomNumber)
		assert.Equal(t, string(room.Type), res.Type)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		svc, _, mockCache := newRoomService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Get(context.Background(), room.ID)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, mockCache := newRoomService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	rate := 150.0

	t.Run("success", func(t *testing.T) {
		svc, repo, mockCache := newRoomService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{NightlyRate: &rate}, "room-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newRoomService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{NightlyRate: &rate}, "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, repo, mockCache := newRoomService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Delete(context.Background(), "room-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newRoomService(t)

		repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, repo, mockCache := newRoomService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Room{{ID: "room-1"}, {ID: "room-2"}}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("count error", func(t *testing.T) {
		svc, repo, mockCache := newRoomService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("connection refused"))

		_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}
