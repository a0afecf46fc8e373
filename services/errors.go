package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNotGroupMember     = errors.New("not a member of the group")
	ErrNotPostOwner       = errors.New("not the writer of the post")
	ErrNotGroupCreator    = errors.New("only the creator of the group can do this")
	ErrBudgetExists       = errors.New("the group already has a budget")
	ErrAlreadyMember      = errors.New("already a member of the group")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrGroupNameTaken     = errors.New("group name is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTotpRequired       = errors.New("one-time code required")
)

// duplicate maps a unique index violation, from a concurrent request that
// passed the same existence check, to the domain error
func duplicate(err, as error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", as, err)
	}
	return err
}

// notFound turns a missing row into ErrNotFound, naming what was looked up
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
