package application

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"afisha/internal/domain"
)

// MaxAvatarSize is the largest accepted profile image, in bytes.
const MaxAvatarSize = 2 << 20

// LoadAvatar reads an image file and encodes it as a data URL for profile_image.
func LoadAvatar(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if info.Size() > MaxAvatarSize {
		return "", domain.ErrAvatarTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	return AvatarDataURL(data)
}

// AvatarDataURL validates raw image bytes and encodes them as a data URL.
func AvatarDataURL(data []byte) (string, error) {
	if len(data) > MaxAvatarSize {
		return "", domain.ErrAvatarTooLarge
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ErrAvatarNotImage
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
