package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"

	"go.uber.org/zap"
)

// AccountService 账号注册/登录服务接口
// 注册与登录统一为一次按手机号幂等的调用：手机号未见过则开户，
// 见过则按登录处理（房东需口令比对）
type AccountService interface {
	RegisterOrLogin(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
}

// accountService 实现
type accountService struct {
	usersRepo repository.UsersRepository
	logger    *zap.Logger
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(usersRepo repository.UsersRepository, logger *zap.Logger) AccountService {
	return &accountService{
		usersRepo: usersRepo,
		logger:    logger,
	}
}

// RegisterRequest 注册/登录请求
type RegisterRequest struct {
	Phone         string // 必填，全局唯一自然键
	Name          string // 展示名
	Role          string // "landlord" | "tenant"
	LandlordPhone string // 仅 tenant：所属房东的手机号
	Password      string // 仅 landlord：必填
}

// RegisterResponse 注册/登录响应
type RegisterResponse struct {
	UserID int64 // 新建或命中的用户 id
	IsNew  bool  // 本次调用是否新开了账号
}

// RegisterOrLogin 注册或登录
//
// 规则：
//   - role 必须是 landlord 或 tenant，否则 ErrValidation
//   - landlord 必须携带非空 password，否则 ErrValidation
//   - tenant 的 LandlordPhone 必须解析到一个 landlord 账号，否则 ErrNotFound
//   - 手机号已存在且 role=landlord 时比对存储口令，不符则 ErrAuthentication；
//     tenant 登录从不查口令
func (s *accountService) RegisterOrLogin(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if req.Role != domain.RoleLandlord && req.Role != domain.RoleTenant {
		return nil, fmt.Errorf("%w: role must be landlord or tenant", domain.ErrValidation)
	}
	if req.Role == domain.RoleLandlord && req.Password == "" {
		s.logger.Warn("Registration rejected: landlord without password",
			zap.String("phone", req.Phone),
		)
		return nil, fmt.Errorf("%w: password required for landlord", domain.ErrValidation)
	}

	u := &domain.User{
		Phone: req.Phone,
		Name:  req.Name,
		Role:  req.Role,
	}
	if req.Role == domain.RoleLandlord {
		u.Password = sql.NullString{String: req.Password, Valid: true}
	}

	// tenant：先把房东手机号解析成 landlord_id
	if req.Role == domain.RoleTenant {
		landlord, err := s.usersRepo.GetUserByPhone(ctx, req.LandlordPhone)
		if err != nil {
			return nil, fmt.Errorf("landlord phone %q: %w", req.LandlordPhone, err)
		}
		if !landlord.IsLandlord() {
			s.logger.Warn("Registration rejected: referenced account is not a landlord",
				zap.String("phone", req.Phone),
				zap.String("landlord_phone", req.LandlordPhone),
			)
			return nil, fmt.Errorf("account %q is not a landlord: %w", req.LandlordPhone, domain.ErrNotFound)
		}
		u.LandlordID = sql.NullInt64{Int64: landlord.ID, Valid: true}
	}

	outcome, err := s.usersRepo.RegisterUser(ctx, u)
	if err != nil {
		return nil, err
	}

	// 手机号命中既有账号：房东登录必须口令一致
	if !outcome.IsNew && req.Role == domain.RoleLandlord {
		stored := ""
		if outcome.StoredPassword.Valid {
			stored = outcome.StoredPassword.String
		}
		if stored != req.Password {
			s.logger.Warn("Landlord login failed: password mismatch",
				zap.String("phone", req.Phone),
				zap.Int64("user_id", outcome.UserID),
			)
			return nil, fmt.Errorf("incorrect password for landlord: %w", domain.ErrAuthentication)
		}
	}

	if outcome.IsNew {
		s.logger.Info("Account created",
			zap.Int64("user_id", outcome.UserID),
			zap.String("role", req.Role),
		)
	}

	return &RegisterResponse{UserID: outcome.UserID, IsNew: outcome.IsNew}, nil
}

// GetUser 按 id 查询用户
func (s *accountService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.usersRepo.GetUser(ctx, userID)
}

// GetUserByPhone 按手机号查询用户
func (s *accountService) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.usersRepo.GetUserByPhone(ctx, phone)
}

// UpdateProfileRequest 资料更新请求（空字段不更新）
type UpdateProfileRequest struct {
	UserID     int64
	Name       string // 可选
	ProfilePic string // 可选，头像路径/URI
}

// UpdateProfile 部分更新资料；口令不在该路径上，不可变更
func (s *accountService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return s.usersRepo.UpdateProfile(ctx, req.UserID, req.Name, req.ProfilePic)
}
