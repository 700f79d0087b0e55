package validate

// AllowedImages is the upload MIME allow-list.
var AllowedImages = []string{"image/jpeg", "image/png", "image/gif"}

// IsAllowedImage tells whether mime is in the allow-list.
func IsAllowedImage(mime string) bool {
	for _, allowed := range AllowedImages {
		if mime == allowed {
			return true
		}
	}
	return false
}

type Login struct {
	Email    string `json:"email" validate:"required,emailx"`
	Password string `json:"password" validate:"required,min=6,hasupper,hasdigit,hassymbol"`
}

type Signup struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,emailx"`
	Password        string `json:"password" validate:"required,min=6,hasupper,hasdigit,hassymbol"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Post is the create-post form. Image carries the sniffed MIME type of the
// uploaded picture.
type Post struct {
	Title       string `json:"title" validate:"required,max=50"`
	Description string `json:"description" validate:"max=500"`
	Image       string `json:"image" validate:"required,allowedimage"`
}

// Profile edit form. ProfilePic and BannerPic hold the MIME type of the new
// pictures, empty when unchanged.
type Profile struct {
	Username   string `json:"username" validate:"required"`
	Bio        string `json:"bio" validate:"max=500"`
	ProfilePic string `json:"profilePic" validate:"omitempty,allowedimage"`
	BannerPic  string `json:"bannerPic" validate:"omitempty,allowedimage"`
}

type Email struct {
	Email string `json:"email" validate:"required,emailx"`
}

type Password struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password" validate:"required,min=6,hasupper,hasdigit,hassymbol"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type Comment struct {
	Comment string `json:"comment" validate:"filled"`
}
