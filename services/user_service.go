package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/biosecret/go-todo/database"
	"github.com/biosecret/go-todo/models"
	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
)

// UserService đăng ký và xác thực người dùng
type UserService struct {
	db     *sql.DB
	cost   int
	logger *log.Logger
}

// NewUserService tạo service; cost ngoài khoảng hợp lệ của bcrypt sẽ dùng bcrypt.DefaultCost
func NewUserService(db *sql.DB, cost int, logger *log.Logger) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = log.Default()
	}
	return &UserService{db: db, cost: cost, logger: logger}
}

// Create hash mật khẩu rồi lưu người dùng; trùng email trả về ErrConflict
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, newError(ErrValidation, "%s", err)
	}

	// Hash mật khẩu
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Identity(),
		PasswordHash: string(hashedPassword),
	}
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			"INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id",
			user.Name, user.Email, user.PasswordHash,
		).Scan(&user.ID)
	})
	if database.IsUniqueViolation(err) {
		return nil, newError(ErrConflict, "User with email %s already exists", user.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash FROM users WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newError(ErrNotFound, "User with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Authenticate so khớp mật khẩu. Sai email hay sai mật khẩu đều trả về ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash FROM users WHERE email = $1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}
	return user, nil
}

func (s *UserService) scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash); err != nil {
		return nil, err
	}
	return &user, nil
}
