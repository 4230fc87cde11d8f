package services

import "errors"

// Not-found failures abort the whole operation.
var (
	ErrCustomerNotFound            = errors.New("customer not found")
	ErrFaenaNotFound               = errors.New("faena not found")
	ErrServiceNotFound             = errors.New("service not found")
	ErrTaskTemplateNotFound        = errors.New("task template not found")
	ErrFieldTemplateNotFound       = errors.New("field template not found")
	ErrLookupEntityNotFound        = errors.New("lookup entity not found")
	ErrLookupOptionNotFound        = errors.New("lookup option not found")
	ErrServiceTaskTemplateNotFound = errors.New("service task template not found")
	ErrDependencyNotFound          = errors.New("dependency not found")
	ErrWorkOrderNotFound           = errors.New("work order not found")
	ErrDayNotFound                 = errors.New("work order day not found")
	ErrDayServiceLinkNotFound      = errors.New("day service link not found")
	ErrDayTaskLinkNotFound         = errors.New("day task template link not found")
	ErrInstanceNotFound            = errors.New("task instance not found")
	ErrUserNotFound                = errors.New("user not found")
)

// Invariant violations fail before any state is written.
var (
	ErrFaenaCustomerMismatch     = errors.New("faena does not belong to the customer")
	ErrInvalidDateRange          = errors.New("start date must not be after end date")
	ErrRequiredPeopleBelowOne    = errors.New("required people must be at least 1")
	ErrDuplicateServiceLink      = errors.New("service is already linked to this day")
	ErrDuplicateTaskTemplateLink = errors.New("task template is already linked to this day")
	ErrDuplicateDependency       = errors.New("dependency already exists")
	ErrSelfDependency            = errors.New("a task cannot depend on itself")
	ErrCrossServiceDependency    = errors.New("dependency endpoints must belong to the same service")
	ErrInvalidDayNumber          = errors.New("day number must be at least 1")
	ErrWorkOrderNotDeletable     = errors.New("only draft or cancelled work orders can be deleted")
	ErrInvalidWorkOrderStatus    = errors.New("invalid work order status")
	ErrInvalidAssignee           = errors.New("one or more users do not exist")
	ErrNoUserIDsProvided         = errors.New("at least one user ID is required")
	ErrNameRequired              = errors.New("name is required")
	ErrInvalidFieldType          = errors.New("invalid field type")
	ErrInvalidFieldSchema        = errors.New("field value schema is not a valid JSON schema")
	ErrLookupEntityRequired      = errors.New("select fields require a lookup entity")
)

// ErrCycleDetected signals that a proposed dependency edge would close a
// cycle; the edge is not written.
var ErrCycleDetected = errors.New("dependency would create a cycle")

// Instance workflow errors.
var (
	ErrNotInstanceOwner          = errors.New("task instance belongs to another worker")
	ErrInstanceAlreadyCompleted  = errors.New("task instance is already completed")
	ErrInstanceNotCompleted      = errors.New("task instance is not completed")
	ErrFieldTemplateMismatch     = errors.New("field template does not belong to the instance's task template")
	ErrMissingRequiredFields     = errors.New("required fields are missing responses")
	ErrInstanceOriginUnavailable = errors.New("task instance origin link no longer resolves to a task template")
)
