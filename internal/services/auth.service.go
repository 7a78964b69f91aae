package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"estatehub/config"
	"estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const TOKEN_ISSUER = "estatehub"

var ErrInvalidToken = errors.New("invalid token")

// AuthService issues and verifies HS256 access tokens and hashes passwords.
type AuthService struct {
	secret []byte
	expiry time.Duration
	log    logger.Logger
}

func NewAuthService(config config.Config) *AuthService {
	return &AuthService{
		secret: []byte(config.JWTSecret),
		expiry: config.JWTExpiry,
		log:    logger.New("authService"),
	}
}

func (s *AuthService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	log := s.log.TraceFromContext(ctx).Function("IssueToken")

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		Issuer:    TOKEN_ISSUER,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", user.ID)
	}

	return token, nil
}

// ParseToken verifies the signature and expiry and returns the user id it names.
func (s *AuthService) ParseToken(ctx context.Context, tokenString string) (uint, error) {
	log := s.log.TraceFromContext(ctx).Function("ParseToken")

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TOKEN_ISSUER),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		log.Debug("token rejected", "error", err)
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}

	return uint(id), nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
