package service

import (
	"errors"
	"strings"

	"github.com/Marga-Ghale/ora-lists/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// listName trims name and checks it is 1..100 characters.
func listName(op, name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required,max=100"); err != nil {
		return "", newError(ErrBadRequest, op, "name must be 1 to 100 characters")
	}
	return name, nil
}

func checkID(op, field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return newError(ErrBadRequest, op, field+" must be a UUID")
	}
	return nil
}

func checkRole(op string, role types.MemberRole) error {
	if !role.IsValid() {
		return newError(ErrBadRequest, op, "role must be ADMIN or GUEST")
	}
	return nil
}

// checkInviteCode reports the first rule the code breaks.
func checkInviteCode(op, code string) error {
	err := validate.Var(code, "required,max=200,printascii")
	if err == nil {
		return nil
	}

	msg := "invite code is invalid"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			msg = "invite code is required"
		case "max":
			msg = "invite code must be at most 200 characters"
		case "printascii":
			msg = "invite code must contain only printable ASCII characters"
		}
	}
	return newError(ErrBadRequest, op, msg)
}

// newInviteCode returns a fresh 122-bit random token.
func newInviteCode() string {
	return uuid.NewString()
}
