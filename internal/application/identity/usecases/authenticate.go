package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      *identity.User
	Token     string
	ExpiresAt time.Time
}

// LoginUseCase verifies credentials and issues an access token. Missing
// users, wrong passwords, and deactivated accounts all produce the same
// error so the response does not reveal which accounts exist.
type LoginUseCase struct {
	userRepo identity.UserRepository
	tokens   TokenService
	logger   logger.Interface
}

func NewLoginUseCase(userRepo identity.UserRepository, tokens TokenService, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, tokens: tokens, logger: logger}
}

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.IsActive() || !user.VerifyPassword(cmd.Password) {
		uc.logger.Warnw("login rejected", "email", utils.MaskEmail(cmd.Email))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.Issue(user.ID(), user.Email(), user.IsSuperAdmin())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", user.ID())
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
