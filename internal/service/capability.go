package service

import (
	"context"
	"fmt"

	"github.com/MadickAngeCesar/MessagingApp/internal/domain"
	"github.com/MadickAngeCesar/MessagingApp/internal/repository"
)

// requireLandlord 校验操作者具备房东能力
// 群组/动态的全部写操作在落库前都先过这一道检查；
// 存储层本身不设角色约束
func requireLandlord(ctx context.Context, usersRepo repository.UsersRepository, actorID int64) (*domain.User, error) {
	actor, err := usersRepo.GetUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor %d: %w", actorID, err)
	}
	if !actor.IsLandlord() {
		return nil, fmt.Errorf("%w: landlord role required", domain.ErrValidation)
	}
	return actor, nil
}
