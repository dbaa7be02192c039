package userservice

import (
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sushihentaime/blogapi/internal/common"
)

const (
	// TokenTTL is the lifetime of a session token issued on login.
	TokenTTL time.Duration = 24 * time.Hour

	// DevelopmentSecret signs tokens when no secret is configured outside production.
	DevelopmentSecret = "default_secret_key"
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	tokens *TokenMaker
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserSummary is the public part of a user returned on login.
type UserSummary struct {
	Email    string `json:"email"`
	UserID   string `json:"userid"`
	Username string `json:"username"`
}

// Session is the result of a successful login.
type Session struct {
	Token  string
	Expiry time.Time
	User   UserSummary
}

// Claims is the payload of a session token.
type Claims struct {
	Email    string `json:"email"`
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}
