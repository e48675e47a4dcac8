package service

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a referenced entity that does not exist. Kind names
// the role the entity was expected to play ("sender", "receiver", "user",
// "group", "post", "author").
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.Name)
}

// ValidationError reports required request fields that were absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

var (
	ErrWrongPassword  = errors.New("wrong password")
	ErrDuplicateUser  = errors.New("username already taken")
	ErrDuplicateGroup = errors.New("group name already taken")
	ErrSelfFriend     = errors.New("cannot add yourself as a friend")
	ErrAlreadyFriends = errors.New("already friends")
	ErrNotMember      = errors.New("sender is not a member of the group")
	ErrRelayOnly      = errors.New("operation not available on the relay")
)
