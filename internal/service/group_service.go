package service

import (
	"context"

	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"go.uber.org/zap"
)

// GroupService 群组服务接口
// 写操作要求操作者是房东（能力检查在本层，不信任调用方）
type GroupService interface {
	CreateGroup(ctx context.Context, actorID int64, name string) (int64, error)
	AddMember(ctx context.Context, actorID, groupID, userID int64) error
	Members(ctx context.Context, groupID int64) ([]repository.GroupMemberRow, error)
	GroupForOwner(ctx context.Context, ownerID int64) (int64, error)
	ListGroups(ctx context.Context) ([]repository.GroupRow, error)
}

// groupService 实现
type groupService struct {
	groupsRepo repository.GroupsRepository
	usersRepo  repository.UsersRepository
	logger     *zap.Logger
}

// NewGroupService 创建 GroupService 实例
func NewGroupService(groupsRepo repository.GroupsRepository, usersRepo repository.UsersRepository, logger *zap.Logger) GroupService {
	return &groupService{
		groupsRepo: groupsRepo,
		usersRepo:  usersRepo,
		logger:     logger,
	}
}

// CreateGroup 房东建群；owner 即操作者本人
// 注册引导之外的调用不检查 "一个 owner 一个群组" 约定
func (s *groupService) CreateGroup(ctx context.Context, actorID int64, name string) (int64, error) {
	if _, err := requireLandlord(ctx, s.usersRepo, actorID); err != nil {
		s.logger.Warn("Create group rejected",
			zap.Int64("actor_id", actorID),
			zap.Error(err),
		)
		return 0, err
	}
	return s.groupsRepo.CreateGroup(ctx, name, actorID)
}

// AddMember 房东拉成员入群；重复添加静默成功
func (s *groupService) AddMember(ctx context.Context, actorID, groupID, userID int64) error {
	if _, err := requireLandlord(ctx, s.usersRepo, actorID); err != nil {
		s.logger.Warn("Add member rejected",
			zap.Int64("actor_id", actorID),
			zap.Int64("group_id", groupID),
			zap.Error(err),
		)
		return err
	}
	return s.groupsRepo.AddMember(ctx, groupID, userID)
}

// Members 成员清单（无序）
func (s *groupService) Members(ctx context.Context, groupID int64) ([]repository.GroupMemberRow, error) {
	return s.groupsRepo.Members(ctx, groupID)
}

// GroupForOwner owner 名下的群组
func (s *groupService) GroupForOwner(ctx context.Context, ownerID int64) (int64, error) {
	return s.groupsRepo.GroupForOwner(ctx, ownerID)
}

// ListGroups 全部群组
func (s *groupService) ListGroups(ctx context.Context) ([]repository.GroupRow, error) {
	return s.groupsRepo.ListGroups(ctx)
}
