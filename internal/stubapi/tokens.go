package stubapi

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const TokenDuration = 24 * time.Hour

// AuthInput carries the raw credential the client sends.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Credential returned by a signin endpoint"`
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Server) GenerateToken(account Account) (string, error) {
	claims := jwt.MapClaims{
		"user_id": account.ID,
		"role":    string(account.Role),
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Authorize resolves the credential to an account whose role is one of
// allowed. An empty allowed list accepts every role.
func (s *Server) Authorize(ctx context.Context, header string, allowed ...models.Role) (Account, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		return Account{}, huma.Error401Unauthorized("Unauthorized: No token found")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Account{}, huma.Error401Unauthorized("Unauthorized: Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Account{}, huma.Error401Unauthorized("Unauthorized")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return Account{}, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}

	var account Account
	if err := s.db.WithContext(ctx).First(&account, uint(userIDFloat)).Error; err != nil {
		return Account{}, huma.Error401Unauthorized("Unauthorized: Unknown account")
	}
	if len(allowed) > 0 && !slices.Contains(allowed, account.Role) {
		return Account{}, huma.Error403Forbidden("Access denied")
	}
	return account, nil
}
