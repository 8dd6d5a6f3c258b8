package services

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"excel-analytics-api/internal/application/ports"
	domain "excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/infrastructure/mq"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	userRepository domain.Repository
	jwtService     *jwt.Service
	adminSecret    string
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository domain.Repository,
	jwtService *jwt.Service,
	adminSecret string,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		adminSecret:    adminSecret,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (as *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error) {
	if in.IsAdmin {
		if subtle.ConstantTimeCompare([]byte(in.AdminSecret), []byte(as.adminSecret)) != 1 {
			return nil, "", ErrForbidden
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	hashStr := string(hash)

	u, err := as.userRepository.CreateUser(ctx, domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: &hashStr,
		IsAdmin:      in.IsAdmin,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Role(), tokenTTL)
	if err != nil {
		return nil, "", err
	}

	as.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionCreated,
		Entity:  "user",
		ActorID: u.UUID.String(),
		Subject: u.Email,
	}
	as.mCounter.WithLabelValues("user_registered_total").Inc()

	return u, token, nil
}

// Login returns the identical ErrInvalidCredentials for an unknown email
// and a wrong password, so callers cannot probe which one failed.
func (as *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := as.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || u.PasswordHash == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Role(), tokenTTL)
	if err != nil {
		return nil, "", err
	}

	as.mCounter.WithLabelValues("user_logged_in_total").Inc()

	return u, token, nil
}

// Authenticate is the precondition of every protected operation: verify
// the token, then load the referenced user.
func (as *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := as.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}

	u, err := as.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return u, nil
}
