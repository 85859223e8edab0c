package service

import (
	"context"
	"errors"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"go.uber.org/zap"
)

// RoomService 房间台账服务接口
type RoomService interface {
	// Provision 预置 1..totalRooms 号房间，只增不减
	Provision(ctx context.Context, totalRooms int) error
	// AssignByTenantName 按租客展示名落位到房间
	// 租客或房间不存在返回 false（预期分支，不是错误）
	AssignByTenantName(ctx context.Context, roomNumber, tenantName string) (bool, error)
	// ListRooms 房间清单，按房间号数值序
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

// roomService 实现
type roomService struct {
	roomsRepo repository.RoomsRepository
	usersRepo repository.UsersRepository
	logger    *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(roomsRepo repository.RoomsRepository, usersRepo repository.UsersRepository, logger *zap.Logger) RoomService {
	return &roomService{
		roomsRepo: roomsRepo,
		usersRepo: usersRepo,
		logger:    logger,
	}
}

// Provision 预置房间
func (s *roomService) Provision(ctx context.Context, totalRooms int) error {
	return s.roomsRepo.ProvisionUpTo(ctx, totalRooms)
}

// AssignByTenantName 解析租客后落位
func (s *roomService) AssignByTenantName(ctx context.Context, roomNumber, tenantName string) (bool, error) {
	tenantID, err := s.usersRepo.FindTenantIDByName(ctx, tenantName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("Room assignment skipped: tenant not found",
				zap.String("room_number", roomNumber),
				zap.String("tenant_name", tenantName),
			)
			return false, nil
		}
		return false, err
	}

	assigned, err := s.roomsRepo.AssignTenant(ctx, roomNumber, tenantID)
	if err != nil {
		return false, err
	}
	if assigned {
		s.logger.Info("Tenant assigned to room",
			zap.String("room_number", roomNumber),
			zap.Int64("tenant_id", tenantID),
		)
	}
	return assigned, nil
}

// ListRooms 房间清单
func (s *roomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.roomsRepo.ListRooms(ctx)
}
