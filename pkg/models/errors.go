package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrInvalidRow       = errors.New("the stored row does not match the expected schema")
)

// Constraint errors
var (
	ErrCategoryNameNotUnique = errors.New("the category name must be unique per type")
	ErrWalletsNotDifferent   = errors.New("source and destination wallet of a transfer must be different")
	ErrReferenceMissing      = errors.New("there is no resource for the ID you specified in the reference to another resource")
	ErrStillReferenced       = errors.New("the resource is still referenced by other resources and cannot be deleted")
	ErrMemberNotUnique       = errors.New("the user is already a member of this workspace")
)
