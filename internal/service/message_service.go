package service

import (
	"context"
	"errors"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"go.uber.org/zap"
)

// MessageService 私信服务接口
type MessageService interface {
	// Append 任意两个账号之间追加消息；id 不做存在性校验
	Append(ctx context.Context, senderID, recipientID int64, content string) error
	// Conversation 两人会话，时间升序，方向对称
	Conversation(ctx context.Context, userID, partnerID int64) ([]repository.ConversationRow, error)
	// ConversationPartners 有过往来的对端用户记录（去重）
	ConversationPartners(ctx context.Context, userID int64) ([]*domain.User, error)
}

// messageService 实现
type messageService struct {
	messagesRepo repository.MessagesRepository
	usersRepo    repository.UsersRepository
	logger       *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(messagesRepo repository.MessagesRepository, usersRepo repository.UsersRepository, logger *zap.Logger) MessageService {
	return &messageService{
		messagesRepo: messagesRepo,
		usersRepo:    usersRepo,
		logger:       logger,
	}
}

// Append 追加消息
func (s *messageService) Append(ctx context.Context, senderID, recipientID int64, content string) error {
	return s.messagesRepo.Append(ctx, senderID, recipientID, content)
}

// Conversation 两人会话
func (s *messageService) Conversation(ctx context.Context, userID, partnerID int64) ([]repository.ConversationRow, error) {
	return s.messagesRepo.ConversationBetween(ctx, userID, partnerID)
}

// ConversationPartners 对端 id 集合逐个解析为用户记录
// 解析不到的 id（消息表不设外键，可能指向不存在的账号）跳过
func (s *messageService) ConversationPartners(ctx context.Context, userID int64) ([]*domain.User, error) {
	ids, err := s.messagesRepo.PartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	partners := []*domain.User{}
	for _, id := range ids {
		partner, err := s.usersRepo.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		partners = append(partners, partner)
	}
	return partners, nil
}
