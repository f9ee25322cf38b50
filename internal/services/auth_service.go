package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	db *sql.DB
}

func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{db: db}
}

type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
}

func (s *AuthService) CreateUser(ctx context.Context, userName, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, user_name, email, password_hash)
         VALUES ($1, $2, $3, $4)`,
		u.ID, u.UserName, u.Email, u.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) GetByUserName(ctx context.Context, userName string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_name, email, password_hash FROM users WHERE user_name = $1`,
		userName,
	).Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) EmailInUse(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *AuthService) CheckPassword(u *User, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
