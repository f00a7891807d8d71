// Package auth содержит логику входа администратора и проверки JWT.
package auth

import (
	"errors"

	"github.com/magabrotheeeer/newsletter-service/internal/lib/jwt"
	"github.com/magabrotheeeer/newsletter-service/internal/lib/password"
)

// ErrInvalidCredentials возвращается при несовпадении пароля администратора.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Имя и роль единственного администратора в claims токена.
const (
	adminUsername = "admin"
	adminRole     = "admin"
)

// Service отвечает за вход администратора и валидацию JWT.
// Секрет и срок жизни токена передаются при создании, глобального
// состояния сервис не держит.
type Service struct {
	adminPasswordHash string
	jwtMaker          jwt.Maker
}

// New создает новый Service с bcrypt-хэшем пароля администратора и генератором токенов.
func New(adminPasswordHash string, jwtMaker jwt.Maker) *Service {
	return &Service{
		adminPasswordHash: adminPasswordHash,
		jwtMaker:          jwtMaker,
	}
}

// Login сверяет пароль с хэшем из конфигурации и выдаёт JWT.
// При несовпадении возвращает ErrInvalidCredentials.
func (s *Service) Login(rawPassword string) (string, error) {
	if err := password.CompareHash(s.adminPasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(adminUsername, adminRole)
}

// ValidateToken проверяет JWT и возвращает claims, если токен валиден и не истёк.
func (s *Service) ValidateToken(token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
