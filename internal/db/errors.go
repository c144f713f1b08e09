package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrDuplicatePlan = errors.New("a plan with this provider and name already exists")
)
