package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

var validate = validator.New()

// Credentials are stored and compared in plaintext to stay readable
// against existing user records. Not suitable for real deployments.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func ValidateCredentials(req *CredentialsRequest) error {
	return validate.Struct(req)
}

var (
	ErrEmailTaken         = internal.NewAppError(409, "user already exists")
	ErrInvalidCredentials = internal.NewAppError(401, "invalid email or password")
	ErrNoSession          = internal.NewAppError(401, "invalid or missing session")
)

// SignUp creates a user, enforcing one record per email, and opens a
// session.
func SignUp(ctx context.Context, st *store.ProfileStore, req *CredentialsRequest) (*internal.User, *internal.Session, error) {
	users := st.Users(ctx)
	for _, u := range users {
		if u.Email == req.Email {
			return nil, nil, ErrEmailTaken
		}
	}

	user := internal.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: req.Password,
	}
	if err := st.SaveUsers(ctx, append(users, user)); err != nil {
		return nil, nil, err
	}

	session, err := openSession(ctx, st, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, session, nil
}

// SignIn looks the user up by exact email/password match.
func SignIn(ctx context.Context, st *store.ProfileStore, req *CredentialsRequest) (*internal.User, *internal.Session, error) {
	for _, u := range st.Users(ctx) {
		if u.Email == req.Email && u.Password == req.Password {
			session, err := openSession(ctx, st, u.ID)
			if err != nil {
				return nil, nil, err
			}
			user := u
			return &user, session, nil
		}
	}
	return nil, nil, ErrInvalidCredentials
}

func openSession(ctx context.Context, st *store.ProfileStore, userID string) (*internal.Session, error) {
	session := internal.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	sessions := st.Sessions(ctx)
	sessions[session.Token] = session
	if err := st.SaveSessions(ctx, sessions); err != nil {
		return nil, err
	}
	return &session, nil
}

// Authenticate resolves a bearer token to its user.
func Authenticate(ctx context.Context, st *store.ProfileStore, token string) (*internal.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	session, ok := st.Sessions(ctx)[token]
	if !ok {
		return nil, ErrNoSession
	}
	for _, u := range st.Users(ctx) {
		if u.ID == session.UserID {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNoSession
}
