package service

import (
	"context"
	"fmt"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"go.uber.org/zap"
)

// StatusService 房东动态服务接口
type StatusService interface {
	// Post 发布动态；作者必须是房东
	Post(ctx context.Context, authorID int64, text string) error
	// FeedFor 观察者可见的动态流，最新在前：
	// 租客看其所属房东的时间线，房东看自己的
	FeedFor(ctx context.Context, viewerID int64) ([]repository.StatusRow, error)
}

// statusService 实现
type statusService struct {
	statusesRepo repository.StatusesRepository
	usersRepo    repository.UsersRepository
	logger       *zap.Logger
}

// NewStatusService 创建 StatusService 实例
func NewStatusService(statusesRepo repository.StatusesRepository, usersRepo repository.UsersRepository, logger *zap.Logger) StatusService {
	return &statusService{
		statusesRepo: statusesRepo,
		usersRepo:    usersRepo,
		logger:       logger,
	}
}

// Post 发布动态
func (s *statusService) Post(ctx context.Context, authorID int64, text string) error {
	if _, err := requireLandlord(ctx, s.usersRepo, authorID); err != nil {
		s.logger.Warn("Post status rejected",
			zap.Int64("author_id", authorID),
			zap.Error(err),
		)
		return err
	}
	return s.statusesRepo.Post(ctx, authorID, text)
}

// FeedFor 解析观察者应读的时间线作者后取数
func (s *statusService) FeedFor(ctx context.Context, viewerID int64) ([]repository.StatusRow, error) {
	viewer, err := s.usersRepo.GetUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("viewer %d: %w", viewerID, err)
	}

	targetID := viewer.ID
	if viewer.IsTenant() {
		if !viewer.LandlordID.Valid {
			// 未挂靠房东的租客没有可读的动态流
			return nil, fmt.Errorf("tenant %d has no landlord: %w", viewerID, domain.ErrNotFound)
		}
		targetID = viewer.LandlordID.Int64
	}

	return s.statusesRepo.TimelineOf(ctx, targetID)
}
