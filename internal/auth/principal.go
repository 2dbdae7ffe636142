package auth

import "github.com/gdg-garage/hotel-reservation-api/internal/models"

type Class int

const (
	ClassGuest Class = iota
	ClassRegisteredUser
	ClassAdministrator
)

func (c Class) String() string {
	switch c {
	case ClassAdministrator:
		return "administrator"
	case ClassRegisteredUser:
		return "registered_user"
	default:
		return "guest"
	}
}

// Principal is an identity the gate has authenticated. Anonymous guests have
// no login and a zero LoginID.
type Principal struct {
	LoginID     uint   `json:"login_id"`
	GuestID     uint   `json:"guest_id"`
	Username    string `json:"username"`
	AccessLevel int64  `json:"access_level"`
}

func Classify(p Principal) Class {
	switch {
	case p.LoginID == 0:
		return ClassGuest
	case p.AccessLevel == models.AdminAccessLevel:
		return ClassAdministrator
	default:
		return ClassRegisteredUser
	}
}

func (p Principal) IsAdmin() bool {
	return Classify(p) == ClassAdministrator
}
