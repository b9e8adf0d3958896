package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

const AvatarFolder = "avatars"

type CustomClaims struct {
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// DisplayName pulls the optional display name the auth collaborator stores
// in user metadata.
func (c *CustomClaims) DisplayName() string {
	if c.UserMetadata == nil {
		return ""
	}
	if name, ok := c.UserMetadata["display_name"].(string); ok {
		return name
	}
	return ""
}

func ValidateToken(tokenStr string) (*CustomClaims, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwksURL := fmt.Sprintf("%s/rest/v1/auth/jwks", supabaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		// Fallback to unverified parsing if JWKS fails (for development)
		token, _, parseErr := jwt.NewParser().ParseUnverified(tokenStr, &CustomClaims{})
		if parseErr != nil {
			return nil, fmt.Errorf("JWKS validation failed and fallback parsing failed: %v", parseErr)
		}
		claims, ok := token.Claims.(*CustomClaims)
		if !ok {
			return nil, errors.New("invalid token claims")
		}
		return claims, nil
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	return hasLower && hasUpper && hasNumber
}

// UploadAvatarImage pushes a user avatar to Cloudinary and returns the
// hosted URL. Review photos never go through here; those stay inline in
// the review document.
func UploadAvatarImage(ctx context.Context, cld *cloudinary.Cloudinary, dataURI string, userID string) (string, error) {
	if cld == nil {
		return "", errors.New("cloudinary client is not initialized")
	}

	uploadResult, err := cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:   AvatarFolder,
		PublicID: userID,
		Tags:     []string{"beerlog"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %v", err)
	}

	return uploadResult.SecureURL, nil
}
