package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/redlaboral/portal/pkg/errx"
)

// PasswordService hashes and verifies account passwords
type PasswordService interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) error
}

// BcryptPasswordService implements PasswordService with bcrypt
type BcryptPasswordService struct {
	cost int
}

func NewBcryptPasswordService(cost int) *BcryptPasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordService{cost: cost}
}

func (s *BcryptPasswordService) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hash), nil
}

// Verify returns an authentication error when the password does not match
func (s *BcryptPasswordService) Verify(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrInvalidCredentials()
	}
	return nil
}
