package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

const ProfileTable = "profiles"

// AuthError is a collaborator failure already mapped to the fixed
// user-facing message the views show inline. Unknown codes get the generic
// retry message.
type AuthError struct {
	Message string
	cause   error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.cause }

const (
	MsgInvalidCredentials = "Nieprawidłowy email lub hasło"
	MsgUserNotFound       = "Nie znaleziono użytkownika z tym adresem email."
	MsgInvalidEmail       = "Nieprawidłowy format adresu email."
	MsgEmailInUse         = "Ten adres email jest już zarejestrowany."
	MsgRateLimited        = "Zbyt wiele prób. Spróbuj ponownie za chwilę."
	MsgGenericAuth        = "Wystąpił błąd. Spróbuj ponownie."
)

// mapAuthError folds the collaborator's error surface into the fixed set
// of localized messages. The gotrue client exposes failures as error
// strings, so matching follows the known response bodies.
func mapAuthError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "invalid login credentials"),
		strings.Contains(msg, "Invalid login credentials"):
		return &AuthError{Message: MsgInvalidCredentials, cause: err}
	case strings.Contains(msg, "user not found"),
		strings.Contains(msg, "User not found"):
		return &AuthError{Message: MsgUserNotFound, cause: err}
	case strings.Contains(msg, "invalid email"),
		strings.Contains(msg, "validate email"),
		strings.Contains(msg, "invalid format"):
		return &AuthError{Message: MsgInvalidEmail, cause: err}
	case strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already Registered"):
		return &AuthError{Message: MsgEmailInUse, cause: err}
	case strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "too many requests"):
		return &AuthError{Message: MsgRateLimited, cause: err}
	}
	return &AuthError{Message: MsgGenericAuth, cause: err}
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*types.SignupResponse, error)
	AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error)
	SendPasswordReset(ctx context.Context, email string) error
	RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error)
	UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string, accessToken string) (string, error)
}

func ConvertToUser(raw map[string]interface{}) (*User, error) {
	userBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw user: %v", err)
	}

	user := &User{}
	if err := json.Unmarshal(userBytes, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to user struct: %v", err)
	}

	return user, nil
}

func (su *SupabaseRepo) CreateUser(ctx context.Context, user *User) (*types.SignupResponse, error) {
	signed := types.SignupRequest{
		Email:    user.Email,
		Password: user.Password,
	}

	res, err := su.supabaseClient.Auth.Signup(signed)
	if err != nil {
		return nil, mapAuthError(err)
	}
	return res, nil
}

func (su *SupabaseRepo) AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, mapAuthError(err)
	}
	return resp, nil
}

// SendPasswordReset asks the auth collaborator to email a reset link. The
// success path tells the user nothing about account existence; known error
// codes still map to their localized messages.
func (su *SupabaseRepo) SendPasswordReset(ctx context.Context, email string) error {
	err := su.supabaseClient.Auth.Recover(types.RecoverRequest{Email: email})
	if err != nil {
		return mapAuthError(err)
	}
	return nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, mapAuthError(err)
	}
	return resp, nil
}

func (su *SupabaseRepo) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	raw, status, err := client.From(ProfileTable).
		Select("id,email,display_name,avatar_url,created_at,updated_at", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, fmt.Errorf("postgrest error: status=%d body=%s err=%v", status, string(raw), err)
		}
		return nil, fmt.Errorf("failed to get user by ID: %v", err)
	}

	// Supabase returns an array even for single results
	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user rows: %v", err)
	}

	if len(users) == 0 {
		return nil, errors.New("user not found")
	}

	return &users[0], nil
}

func (su *SupabaseRepo) UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string, accessToken string) (string, error) {
	if userId == uuid.Nil {
		return "", fmt.Errorf("no valid UUID provided")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return "", fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	raw, count, err := client.From(ProfileTable).Update(map[string]interface{}{
		"avatar_url": avatarURL,
	}, "", "exact").Eq("id", userId.String()).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to update avatar: %v", err)
	}

	if count == 0 {
		return "", fmt.Errorf("no user found to update avatar")
	}

	var rawUsers []map[string]interface{}
	if err := json.Unmarshal(raw, &rawUsers); err != nil {
		return "", fmt.Errorf("failed to unmarshal updated user data: %v", err)
	}

	if len(rawUsers) == 0 {
		return "", fmt.Errorf("no user data returned after avatar update")
	}

	updatedUser, err := ConvertToUser(rawUsers[0])
	if err != nil {
		return "", fmt.Errorf("failed to convert updated user data: %v", err)
	}

	return updatedUser.AvatarURL, nil
}
