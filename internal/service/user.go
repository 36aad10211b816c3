package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"radbytes.org/pulse/common/id"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/store"
)

// ErrUserExists is returned by Create when the name is already taken.
var ErrUserExists = errors.New("user already exists")

type UserService interface {
	Create(ctx context.Context, name string, isManager bool) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	userStore store.UserStore
	txRunner  TxRunner
}

func NewUserService(userStore store.UserStore, txRunner TxRunner) UserService {
	return &userService{
		userStore: userStore,
		txRunner:  txRunner,
	}
}

func (s *userService) Create(ctx context.Context, name string, isManager bool) (*model.User, error) {
	existing, err := s.userStore.GetByName(ctx, name)
	if err == nil {
		slog.InfoContext(ctx, "user name already taken", "name", name, "user_id", existing.ID)
		return nil, ErrUserExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up user by name: %w", err)
	}

	user := &model.User{
		ID:        id.New(),
		Name:      name,
		IsManager: isManager,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to create user",
			"error", err,
			"name", name,
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

// Delete removes the user together with their conversation, their feedback runs and
// the plans they produced. Plans targeting the user (manager views of other
// employees) are left alone.
func (s *userService) Delete(ctx context.Context, id int64) error {
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Users().GetByID(ctx, id); err != nil {
			return err
		}
		if err := stores.Chats().DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("deleting chats: %w", err)
		}
		if err := stores.PipelineRuns().DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("deleting feedback runs: %w", err)
		}
		if err := stores.Plans().DeleteByActingUser(ctx, id); err != nil {
			return fmt.Errorf("deleting plans: %w", err)
		}
		if err := stores.Users().Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}

	slog.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}
