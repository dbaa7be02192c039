package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogapi/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("incorrect email or password")
	ErrEventNotPublished     = errors.New("user.created event not published")
)

// NewUserService wires the user accessor. mb may be nil, in which case no events are published.
func NewUserService(db *sql.DB, mb common.MessageProducer, tokens *TokenMaker) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		tokens: tokens,
	}
}

// CreateUser stores a new user and publishes a user.created event. When only the publish fails the
// created user is still returned together with an error wrapping ErrEventNotPublished.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	v := common.NewValidator()
	validateRequired(v, req.Email, "email")
	validateRequired(v, req.Username, "username")
	validatePassword(v, req.Password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Email:    req.Email,
		Username: req.Username,
	}

	err := u.Password.set(req.Password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	if s.mb == nil {
		return &u, nil
	}

	data, err := json.Marshal(common.UserCreatedEvent{Email: u.Email, Username: u.Username})
	if err == nil {
		err = s.mb.Publish(ctx, data, common.UserCreatedKey, common.UserExchange)
	}
	if err != nil {
		return &u, fmt.Errorf("%w: %v", ErrEventNotPublished, err)
	}

	return &u, nil
}

// GetUserByEmail returns the user with exactly this email or ErrNotFound.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	v := common.NewValidator()
	validateRequired(v, email, "email")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByEmail(ctx, email)
}

// LoginUser checks the credentials and issues a session token.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*Session, error) {
	v := common.NewValidator()
	validateRequired(v, email, "email")
	validateRequired(v, password, "password")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok || user.Email != email {
		return nil, ErrAuthenticationFailure
	}

	token, expiry, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:  token,
		Expiry: expiry,
		User: UserSummary{
			Email:    user.Email,
			UserID:   user.ID,
			Username: user.Username,
		},
	}, nil
}

// VerifyToken returns the claims of a valid session token.
func (s *UserService) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}
