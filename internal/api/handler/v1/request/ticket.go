package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type ValidateTicketRequest struct {
	Token          string `json:"token"`
	AnnouncementID uint   `json:"announcementId"`
}

func (req *ValidateTicketRequest) Validate() error {
	req.Token = strings.TrimSpace(req.Token)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required, validation.Length(1, 128)),
		validation.Field(&req.AnnouncementID, validation.Required),
	)
}
