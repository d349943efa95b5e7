package services

import (
	"context"
	"errors"
	"fmt"

	"pmo-review-api/config"
	"pmo-review-api/models"
	"pmo-review-api/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type UserService struct {
	pool *config.DBPool
}

func NewUserService(pool *config.DBPool) *UserService {
	return &UserService{pool: pool}
}

// Authenticate returns the user whose email and password match.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.Where("email = ?", utils.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Exists reports whether a user with id is still present.
func (s *UserService) Exists(ctx context.Context, id string) (bool, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return false, err
	}
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create registers a user with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, email, password, name, role string) (*models.User, error) {
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if role == "" {
		role = models.RoleReviewer
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}

	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{
		Email:    utils.NormalizeEmail(email),
		Password: hashed,
		Name:     utils.SanitizeInput(name),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return ErrInvalidCredentials
	}
	if err := utils.ValidatePassword(next); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	hashed, err := utils.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(user).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Migrate creates or alters every table owned by the service.
func Migrate(ctx context.Context, pool *config.DBPool) error {
	db, err := pool.Ensure(ctx)
	if err != nil {
		return err
	}
	return db.AutoMigrate(models.AllModels()...)
}
