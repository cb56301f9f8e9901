package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/ctxutil"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/platform/apierr"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

type RegisterInput struct {
	Username       string     `json:"username" binding:"required"`
	FullName       string     `json:"full_name" binding:"required"`
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required,min=8"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	EducationLevel string     `json:"education_level"`
	Gender         string     `json:"gender"`
	ClassLevel     string     `json:"class_level"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// SetContextFromToken validates the bearer token and returns a context
	// carrying the authenticated user's identity.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		db:        db,
		log:       log.With("service", "AuthService"),
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Username == "" || input.Email == "" {
		return nil, fmt.Errorf("username and email required: %w", errors.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:       input.Username,
		FullName:       input.FullName,
		Email:          input.Email,
		Password:       string(hash),
		DateOfBirth:    input.DateOfBirth,
		EducationLevel: input.EducationLevel,
		Gender:         input.Gender,
		ClassLevel:     input.ClassLevel,
		Level:          1,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.userRepo.UsernameOrEmailTaken(ctx, tx, input.Username, input.Email, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("username_or_email_taken",
				fmt.Errorf("username or email already in use: %w", errors.ErrConflict))
		}
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, apierr.Conflict("username_or_email_taken",
				fmt.Errorf("username or email already in use: %w", errors.ErrConflict))
		}
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "userID", user.ID, "username", user.Username)
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := s.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("invalid credentials: %w", errors.ErrUnauthorized)
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", errors.ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) issueToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if strings.TrimSpace(tokenString) == "" {
		return ctx, fmt.Errorf("missing token: %w", errors.ErrUnauthorized)
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token: %w", errors.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid claims: %w", errors.ErrUnauthorized)
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid subject: %w", errors.ErrUnauthorized)
	}
	username, _ := claims["username"].(string)

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Username:    username,
	}), nil
}
