// Package auth implements the single-administrator login flow.
//
// The store has one shared admin credential: a password whose bcrypt hash
// lives in configuration. Login exchanges it for a JWT pair; logout
// blacklists the presented token so revocation works despite JWT being
// stateless.
package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/osantanna/livraria-pos/internal/infrastructure/persistence/redis"
	apperrors "github.com/osantanna/livraria-pos/pkg/errors"
	"github.com/osantanna/livraria-pos/pkg/jwt"
)

// LoginUseCase verifies the admin password and issues a token pair.
type LoginUseCase struct {
	passwordHash string
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

func NewLoginUseCase(passwordHash string, jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *LoginUseCase {
	return &LoginUseCase{
		passwordHash: passwordHash,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginResponse carries the issued tokens.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (uc *LoginUseCase) Execute(ctx context.Context, password, clientIP string) (*LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(uc.passwordHash), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidPassword, "Senha de administrador incorreta")
	}

	tokenPair, err := uc.jwtManager.GenerateToken()
	if err != nil {
		return nil, err
	}

	// session bookkeeping is best effort, login succeeds without it
	sessionData := map[string]interface{}{
		"login_at": time.Now().Unix(),
		"ip":       clientIP,
	}
	if uc.sessionStore != nil {
		_ = uc.sessionStore.SaveSession(ctx, sessionData, 7*24*time.Hour)
	}

	return &LoginResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase revokes the presented access token.
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string) error {
	if uc.sessionStore == nil {
		return nil
	}
	if err := uc.sessionStore.DeleteSession(ctx); err != nil {
		return err
	}
	// blacklist for the token's own lifetime; after that it expires anyway
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenExpire())
}

// VerifyCourtesyUseCase checks the courtesy password the terminal asks for
// before registering a zero-total sale. Kept server side so the secret
// never ships to the frontend bundle.
type VerifyCourtesyUseCase struct {
	courtesyHash string
}

func NewVerifyCourtesyUseCase(courtesyHash string) *VerifyCourtesyUseCase {
	return &VerifyCourtesyUseCase{courtesyHash: courtesyHash}
}

func (uc *VerifyCourtesyUseCase) Execute(ctx context.Context, password string) error {
	if uc.courtesyHash == "" {
		return apperrors.New(apperrors.ErrCodeBusinessError, "Cortesia não está habilitada")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.courtesyHash), []byte(password)); err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidPassword, "Senha de cortesia incorreta")
	}
	return nil
}
