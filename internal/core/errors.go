package core

import "github.com/mdobak/go-xerrors"

var (
	NoRecordFound         = xerrors.Message("No record found")
	ErrForbidden          = xerrors.Message("Not allowed to modify this resource")
	ErrFollowSelf         = xerrors.Message("Cannot follow or unfollow yourself")
	ErrDuplicateEmail     = xerrors.Message("Duplicate email")
	ErrDuplicateUsername  = xerrors.Message("Duplicate username")
	ErrDuplicatedSlug     = xerrors.Message("Duplicate slug")
	ErrInvalidCredentials = xerrors.Message("Invalid credentials")
)
