package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/availability"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Service сервис справочника комнат и расписания их доступности
type Service struct {
	roomRepo         RoomRepository
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(roomRepo RoomRepository, availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		roomRepo:         roomRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// CreateRoom создает комнату. Только для администратора.
func (s *Service) CreateRoom(ctx context.Context, actor domain.Actor, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("CreateRoom: number=%s, type=%d by user=%d", req.RoomNumber, req.RoomTypeID, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("CreateRoom: user=%d is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	number := strings.TrimSpace(req.RoomNumber)
	if number == "" || len(number) > domain.MaxRoomNumberLength {
		return nil, fmt.Errorf("%w: room number must be 1-%d characters", ErrInvalidInput, domain.MaxRoomNumberLength)
	}
	if req.RoomTypeID <= 0 {
		return nil, fmt.Errorf("%w: roomTypeId must be positive", ErrInvalidInput)
	}
	if req.Capacity <= 0 || req.Capacity > domain.MaxRoomCapacity {
		return nil, fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidInput, domain.MaxRoomCapacity)
	}

	room, err := s.roomRepo.CreateRoom(ctx, &domain.Room{
		RoomNumber: number,
		RoomTypeID: req.RoomTypeID,
		Capacity:   req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, roomRepo.ErrRoomNumberTaken):
			s.logger.Warn("CreateRoom: room number %s already exists", number)
			return nil, ErrRoomNumberTaken
		case errors.Is(err, roomRepo.ErrRoomTypeNotFound):
			s.logger.Warn("CreateRoom: room type id=%d not found", req.RoomTypeID)
			return nil, ErrRoomTypeNotFound
		default:
			s.logger.Error("CreateRoom: repository error: %v", err)
			return nil, fmt.Errorf("%w: CreateRoom - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("CreateRoom: created room id=%d", room.ID)

	resp := models.FromDomainRoom(room)
	return &resp, nil
}

// GetRoom получает комнату по ID
func (s *Service) GetRoom(ctx context.Context, id int64) (*models.RoomResponse, error) {
	room, err := s.roomRepo.GetRoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainRoom(room)
	return &resp, nil
}

// ListRooms список всех комнат
func (s *Service) ListRooms(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.roomRepo.ListRooms(ctx)
	if err != nil {
		s.logger.Error("ListRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}

	resp := &models.RoomListResponse{Rooms: make([]models.RoomResponse, 0, len(rooms))}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, models.FromDomainRoom(r))
	}
	return resp, nil
}

// CreateRoomType создает тип комнаты. Только для администратора.
func (s *Service) CreateRoomType(ctx context.Context, actor domain.Actor, req *models.CreateRoomTypeRequest) (*models.RoomTypeResponse, error) {
	s.logger.Info("CreateRoomType: name=%s by user=%d", req.Name, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("CreateRoomType: user=%d is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxRoomTypeNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxRoomTypeNameLength)
	}

	roomType, err := s.roomRepo.CreateRoomType(ctx, &domain.RoomType{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomTypeNameTaken) {
			s.logger.Warn("CreateRoomType: room type %s already exists", name)
			return nil, ErrRoomTypeNameTaken
		}
		s.logger.Error("CreateRoomType: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRoomType - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainRoomType(roomType)
	return &resp, nil
}

// ListRoomTypes список типов комнат
func (s *Service) ListRoomTypes(ctx context.Context) (*models.RoomTypeListResponse, error) {
	roomTypes, err := s.roomRepo.ListRoomTypes(ctx)
	if err != nil {
		s.logger.Error("ListRoomTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRoomTypes - repository error: %v", ErrInternal, err)
	}

	resp := &models.RoomTypeListResponse{RoomTypes: make([]models.RoomTypeResponse, 0, len(roomTypes))}
	for _, t := range roomTypes {
		resp.RoomTypes = append(resp.RoomTypes, models.FromDomainRoomType(t))
	}
	return resp, nil
}

// CreateWindow добавляет окно доступности комнаты. Только для администратора.
// Пересечение с уже существующими окнами допускается.
func (s *Service) CreateWindow(ctx context.Context, actor domain.Actor, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: room=%d, day=%s, %s-%s by user=%d",
		req.RoomID, req.DayOfWeek, req.StartTime, req.EndTime, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("CreateWindow: user=%d is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	window, err := buildWindow(req)
	if err != nil {
		s.logger.Warn("CreateWindow: validation failed: %v", err)
		return nil, err
	}

	created, err := s.availabilityRepo.Create(ctx, window)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrRoomNotFound) {
			s.logger.Warn("CreateWindow: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("CreateWindow: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: created window id=%d for room=%d", created.ID, created.RoomID)

	resp := models.FromDomainWindow(created)
	return &resp, nil
}

// ListWindows все окна комнаты, включая закрытые
func (s *Service) ListWindows(ctx context.Context, roomID int64) (*models.WindowListResponse, error) {
	if _, err := s.roomRepo.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("ListWindows: failed to get room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	windows, err := s.availabilityRepo.ListByRoom(ctx, roomID)
	if err != nil {
		s.logger.Error("ListWindows: repository error for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	resp := &models.WindowListResponse{RoomID: roomID, Windows: make([]models.WindowResponse, 0, len(windows))}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, models.FromDomainWindow(w))
	}
	return resp, nil
}

// DeleteWindow удаляет окно доступности. Только для администратора.
// Существующие бронирования не затрагиваются.
func (s *Service) DeleteWindow(ctx context.Context, actor domain.Actor, windowID int64) error {
	s.logger.Info("DeleteWindow: window=%d by user=%d", windowID, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("DeleteWindow: user=%d is not an administrator", actor.UserID)
		return ErrAccessDenied
	}

	if err := s.availabilityRepo.Delete(ctx, windowID); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found", windowID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error: %v", err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	return nil
}

func buildWindow(req *models.CreateWindowRequest) (*domain.AvailabilityWindow, error) {
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}

	day, err := domain.ParseWeekday(req.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	window := &domain.AvailabilityWindow{
		RoomID:      req.RoomID,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: ptr.Value(req.IsAvailable, true),
	}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return window, nil
}
