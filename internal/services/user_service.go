package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mwrzos/beerlog/internal/connect"
	"github.com/mwrzos/beerlog/internal/helpers"
	"github.com/mwrzos/beerlog/internal/models"
	"github.com/supabase-community/gotrue-go/types"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) CreateUser(ctx context.Context, user *models.User) (*types.SignupResponse, error) {
	if err := models.Validate.Struct(user); err != nil {
		return nil, err
	}

	if !helpers.IsPasswordStrong(user.Password) {
		return nil, fmt.Errorf("hasło musi mieć co najmniej 8 znaków, wielką i małą literę oraz cyfrę")
	}

	return us.userRepo.CreateUser(ctx, user)
}

func (us *UserService) AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, &models.AuthError{Message: models.MsgInvalidEmail}
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, &models.AuthError{Message: models.MsgInvalidCredentials}
	}
	return us.userRepo.AuthenticateUser(ctx, email, password)
}

func (us *UserService) SendPasswordReset(ctx context.Context, email string) error {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return &models.AuthError{Message: models.MsgInvalidEmail}
	}
	return us.userRepo.SendPasswordReset(ctx, email)
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	return us.userRepo.RefreshToken(ctx, refreshToken)
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*models.User, error) {
	res, err := us.userRepo.GetUser(ctx, id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return res, nil
}

// UploadAvatar normalizes the submitted image, pushes it to Cloudinary and
// stores the hosted URL on the profile row.
func (us *UserService) UploadAvatar(ctx context.Context, userId uuid.UUID, imageData []byte, accessToken string) (string, error) {
	if userId == uuid.Nil {
		return "", fmt.Errorf("no valid UUID provided")
	}

	dataURI, err := helpers.NormalizePhoto(imageData, helpers.MaxPhotoWidth)
	if err != nil {
		return "", err
	}

	hostedURL, err := helpers.UploadAvatarImage(ctx, connect.Cld, dataURI, userId.String())
	if err != nil {
		return "", err
	}

	return us.userRepo.UpdateAvatar(ctx, userId, hostedURL, accessToken)
}
