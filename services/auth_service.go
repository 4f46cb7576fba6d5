package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/hassanjrao/translation-management/models"
	"github.com/hassanjrao/translation-management/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// TokenLength is the number of random bytes per token (64 hex chars).
	TokenLength = 32
	// TokenPrefixLength is how many leading hex chars are stored in clear
	// as a lookup index. Prefixes may collide; validation hash-checks
	// every candidate sharing one.
	TokenPrefixLength = 12
)

// ErrInvalidCredentials covers every authentication failure with one
// message so callers cannot tell which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Authenticate(email, password string) (*models.User, error)
	IssueToken(user *models.User, name string) (string, error)
	ValidateToken(plainToken string) (*models.User, error)
	RevokeToken(plainToken string) error
}

type authService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.ApiTokenRepository
}

func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.ApiTokenRepository) AuthService {
	return &authService{userRepo: userRepo, tokenRepo: tokenRepo}
}

func (s *authService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken mints a random token for the user and persists only its
// prefix and a salted hash. The returned plaintext is never retrievable
// again.
func (s *authService) IssueToken(user *models.User, name string) (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	plainToken := hex.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	token := &models.ApiToken{
		UserID:      user.ID,
		Name:        name,
		TokenPrefix: plainToken[:TokenPrefixLength],
		TokenHash:   string(hash),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", err
	}

	return plainToken, nil
}

// ValidateToken resolves a plaintext token to its user. It fetches every
// stored token sharing the prefix and hash-checks each candidate; the
// first match has its last_used_at touched.
func (s *authService) ValidateToken(plainToken string) (*models.User, error) {
	if len(plainToken) < TokenPrefixLength {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.tokenRepo.GetByPrefix(plainToken[:TokenPrefixLength])
	if err != nil {
		return nil, err
	}

	for i := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(tokens[i].TokenHash), []byte(plainToken)) == nil {
			if err := s.tokenRepo.TouchLastUsed(tokens[i].ID); err != nil {
				return nil, err
			}
			user := tokens[i].User
			return &user, nil
		}
	}

	return nil, ErrInvalidCredentials
}

// RevokeToken deletes every stored token whose hash verifies against the
// plaintext. At most one should match, but hash collisions are tolerated
// by deleting all verified matches.
func (s *authService) RevokeToken(plainToken string) error {
	if len(plainToken) < TokenPrefixLength {
		return ErrInvalidCredentials
	}

	tokens, err := s.tokenRepo.GetByPrefix(plainToken[:TokenPrefixLength])
	if err != nil {
		return err
	}

	for i := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(tokens[i].TokenHash), []byte(plainToken)) == nil {
			if err := s.tokenRepo.Delete(tokens[i].ID); err != nil {
				return err
			}
		}
	}

	return nil
}
