package domain

import "errors"

var ErrUnauthorized = errors.New("unauthorized access")
var ErrForbidden = errors.New("forbidden")
var ErrDuplicateBid = errors.New("you have already placed a bid on this job")
var ErrJobNotFound = errors.New("job not found")
var ErrBidNotFound = errors.New("bid not found")
var ErrInvalidID = errors.New("invalid document id")
var ErrInvalidIdentity = errors.New("identity email is required")
var ErrEmptyUpdate = errors.New("update has no fields to set")
