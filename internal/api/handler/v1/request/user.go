package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Length(0, 30)),
		validation.Field(&req.Bio, validation.Length(0, 500)),
		validation.Field(&req.AvatarURL, validation.Length(0, 500), imageRef),
	)
}

func (req *UpdateProfileRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func (req *ChangeRoleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In(
			string(domain.RoleUser), string(domain.RoleAdmin), string(domain.RoleTopAdmin),
		)),
	)
}

// imageRef accepts an uploaded image path or an absolute URL.
var imageRef = validation.By(func(value any) error {
	v, isNil := validation.Indirect(value)
	s, _ := v.(string)
	if isNil || s == "" || strings.HasPrefix(s, "/") {
		return nil
	}
	return is.URL.Validate(s)
})
