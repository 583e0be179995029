package repository

import "errors"

var (
	ErrNoRequest    = errors.New("no active friend request")
	ErrNoFriendship = errors.New("no friendship")
)
