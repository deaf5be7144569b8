package constants

const (
	AppVersion = "1.0.0"

	// Gin context keys set by the JWT middleware.
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"

	// Image upload limits.
	MaxImageSizeBytes = 10 * 1024 * 1024
)

// AllowedImageTypes are the content types accepted by the image upload route.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}
