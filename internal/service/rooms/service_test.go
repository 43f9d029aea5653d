package rooms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/availability"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type mockRoomRepo struct{ mock.Mock }

func (m *mockRoomRepo) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	args := m.Called(ctx, room)
	if v := args.Get(0); v != nil {
		return v.(*domain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) CreateRoomType(ctx context.Context, roomType *domain.RoomType) (*domain.RoomType, error) {
	args := m.Called(ctx, roomType)
	if v := args.Get(0); v != nil {
		return v.(*domain.RoomType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) ListRoomTypes(ctx context.Context) ([]*domain.RoomType, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.RoomType), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAvailabilityRepo struct{ mock.Mock }

func (m *mockAvailabilityRepo) ListByRoom(ctx context.Context, roomID int64) ([]*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, roomID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.AvailabilityWindow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAvailabilityRepo) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, window)
	if v := args.Get(0); v != nil {
		return v.(*domain.AvailabilityWindow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAvailabilityRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var (
	admin   = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	student = domain.Actor{UserID: 7, Role: domain.RoleUser}
)

func newService() (*Service, *mockRoomRepo, *mockAvailabilityRepo) {
	rooms := &mockRoomRepo{}
	availability := &mockAvailabilityRepo{}
	return NewService(rooms, availability, logger.NewNop()), rooms, availability
}

func TestCreateRoom(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, rooms, _ := newService()
		rooms.On("CreateRoom", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
			return r.RoomNumber == "A-101" && r.RoomTypeID == 2 && r.Capacity == 30
		})).Return(&domain.Room{ID: 5, RoomNumber: "A-101", RoomTypeID: 2, Capacity: 30}, nil)

		resp, err := svc.CreateRoom(context.Background(), admin, &models.CreateRoomRequest{
			RoomNumber: " A-101 ",
			RoomTypeID: 2,
			Capacity:   30,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
	})

	t.Run("non admin", func(t *testing.T) {
		svc, rooms, _ := newService()
		_, err := svc.CreateRoom(context.Background(), student, &models.CreateRoomRequest{RoomNumber: "A", RoomTypeID: 1, Capacity: 1})
		assert.ErrorIs(t, err, ErrAccessDenied)
		rooms.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything)
	})

	tests := []struct {
		name    string
		req     models.CreateRoomRequest
		repoErr error
		wantErr error
	}{
		{name: "empty number", req: models.CreateRoomRequest{RoomTypeID: 1, Capacity: 1}, wantErr: ErrInvalidInput},
		{name: "long number", req: models.CreateRoomRequest{RoomNumber: "ROOM-1234567", RoomTypeID: 1, Capacity: 1}, wantErr: ErrInvalidInput},
		{name: "zero capacity", req: models.CreateRoomRequest{RoomNumber: "A", RoomTypeID: 1}, wantErr: ErrInvalidInput},
		{name: "number taken", req: models.CreateRoomRequest{RoomNumber: "A", RoomTypeID: 1, Capacity: 1}, repoErr: roomRepo.ErrRoomNumberTaken, wantErr: ErrRoomNumberTaken},
		{name: "unknown type", req: models.CreateRoomRequest{RoomNumber: "A", RoomTypeID: 9, Capacity: 1}, repoErr: roomRepo.ErrRoomTypeNotFound, wantErr: ErrRoomTypeNotFound},
		{name: "repository failure", req: models.CreateRoomRequest{RoomNumber: "A", RoomTypeID: 1, Capacity: 1}, repoErr: errors.New("boom"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rooms, _ := newService()
			rooms.On("CreateRoom", mock.Anything, mock.Anything).Return(nil, tt.repoErr)

			_, err := svc.CreateRoom(context.Background(), admin, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetRoom_NotFound(t *testing.T) {
	svc, rooms, _ := newService()
	rooms.On("GetRoomByID", mock.Anything, int64(3)).Return(nil, roomRepo.ErrRoomNotFound)

	_, err := svc.GetRoom(context.Background(), 3)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestListRooms_Empty(t *testing.T) {
	svc, rooms, _ := newService()
	rooms.On("ListRooms", mock.Anything).Return([]*domain.Room{}, nil)

	resp, err := svc.ListRooms(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Rooms)
	assert.Empty(t, resp.Rooms)
}

func TestCreateRoomType(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, rooms, _ := newService()
		rooms.On("CreateRoomType", mock.Anything, mock.Anything).
			Return(&domain.RoomType{ID: 2, Name: "Lecture hall"}, nil)

		resp, err := svc.CreateRoomType(context.Background(), admin, &models.CreateRoomTypeRequest{Name: "Lecture hall"})
		require.NoError(t, err)
		assert.Equal(t, "Lecture hall", resp.Name)
	})

	t.Run("name taken", func(t *testing.T) {
		svc, rooms, _ := newService()
		rooms.On("CreateRoomType", mock.Anything, mock.Anything).Return(nil, roomRepo.ErrRoomTypeNameTaken)

		_, err := svc.CreateRoomType(context.Background(), admin, &models.CreateRoomTypeRequest{Name: "Lecture hall"})
		assert.ErrorIs(t, err, ErrRoomTypeNameTaken)
	})

	t.Run("non admin", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateRoomType(context.Background(), student, &models.CreateRoomTypeRequest{Name: "Lab"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCreateWindow(t *testing.T) {
	t.Run("normalizes input", func(t *testing.T) {
		svc, _, availability := newService()
		availability.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.AvailabilityWindow) bool {
			return w.DayOfWeek == domain.Monday &&
				w.StartTime == types.MustTimeString("09:00") &&
				w.EndTime == types.MustTimeString("18:00") &&
				w.IsAvailable
		})).Return(&domain.AvailabilityWindow{
			ID: 11, RoomID: 3, DayOfWeek: domain.Monday,
			StartTime: "09:00", EndTime: "18:00", IsAvailable: true,
		}, nil)

		resp, err := svc.CreateWindow(context.Background(), admin, &models.CreateWindowRequest{
			RoomID:    3,
			DayOfWeek: "monday",
			StartTime: "09:00:00",
			EndTime:   "18:00",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		assert.Equal(t, "Monday", resp.DayOfWeek)
	})

	t.Run("closed window", func(t *testing.T) {
		svc, _, availability := newService()
		availability.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.AvailabilityWindow) bool {
			return !w.IsAvailable
		})).Return(&domain.AvailabilityWindow{ID: 12}, nil)

		_, err := svc.CreateWindow(context.Background(), admin, &models.CreateWindowRequest{
			RoomID: 3, DayOfWeek: "Friday", StartTime: "09:00", EndTime: "10:00", IsAvailable: ptr.Ptr(false),
		})
		assert.NoError(t, err)
	})

	invalid := []models.CreateWindowRequest{
		{RoomID: 3, DayOfWeek: "Funday", StartTime: "09:00", EndTime: "10:00"},
		{RoomID: 3, DayOfWeek: "Monday", StartTime: "9am", EndTime: "10:00"},
		{RoomID: 3, DayOfWeek: "Monday", StartTime: "10:00", EndTime: "10:00"},
		{RoomID: 3, DayOfWeek: "Monday", StartTime: "11:00", EndTime: "10:00"},
		{RoomID: 0, DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00"},
	}
	for _, req := range invalid {
		req := req
		t.Run("invalid "+req.DayOfWeek+" "+req.StartTime+"-"+req.EndTime, func(t *testing.T) {
			svc, _, availability := newService()
			_, err := svc.CreateWindow(context.Background(), admin, &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			availability.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("room not found", func(t *testing.T) {
		svc, _, availability := newService()
		availability.On("Create", mock.Anything, mock.Anything).Return(nil, availabilityRepo.ErrRoomNotFound)

		_, err := svc.CreateWindow(context.Background(), admin, &models.CreateWindowRequest{
			RoomID: 3, DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00",
		})
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("non admin", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateWindow(context.Background(), student, &models.CreateWindowRequest{})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestListWindows(t *testing.T) {
	svc, rooms, availability := newService()
	rooms.On("GetRoomByID", mock.Anything, int64(3)).Return(&domain.Room{ID: 3}, nil)
	availability.On("ListByRoom", mock.Anything, int64(3)).Return([]*domain.AvailabilityWindow{
		{ID: 1, RoomID: 3, DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		{ID: 2, RoomID: 3, DayOfWeek: domain.Monday, StartTime: "11:00", EndTime: "13:00", IsAvailable: false},
	}, nil)

	resp, err := svc.ListWindows(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.False(t, resp.Windows[1].IsAvailable)
}

func TestDeleteWindow(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, _, availability := newService()
		availability.On("Delete", mock.Anything, int64(11)).Return(nil)
		assert.NoError(t, svc.DeleteWindow(context.Background(), admin, 11))
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, availability := newService()
		availability.On("Delete", mock.Anything, int64(11)).Return(availabilityRepo.ErrWindowNotFound)
		assert.ErrorIs(t, svc.DeleteWindow(context.Background(), admin, 11), ErrWindowNotFound)
	})

	t.Run("non admin", func(t *testing.T) {
		svc, _, _ := newService()
		assert.ErrorIs(t, svc.DeleteWindow(context.Background(), student, 11), ErrAccessDenied)
	})
}
