package handlers

import (
	"errors"

	apierrors "github.com/andestrack/field-service-api/internal/errors"
	"github.com/andestrack/field-service-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps services-layer sentinel errors onto the standard
// API error responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrFaenaNotFound),
		errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrTaskTemplateNotFound),
		errors.Is(err, services.ErrFieldTemplateNotFound),
		errors.Is(err, services.ErrLookupEntityNotFound),
		errors.Is(err, services.ErrLookupOptionNotFound),
		errors.Is(err, services.ErrServiceTaskTemplateNotFound),
		errors.Is(err, services.ErrDependencyNotFound),
		errors.Is(err, services.ErrWorkOrderNotFound),
		errors.Is(err, services.ErrDayNotFound),
		errors.Is(err, services.ErrDayServiceLinkNotFound),
		errors.Is(err, services.ErrDayTaskLinkNotFound),
		errors.Is(err, services.ErrInstanceNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrDuplicateServiceLink),
		errors.Is(err, services.ErrDuplicateTaskTemplateLink),
		errors.Is(err, services.ErrDuplicateDependency),
		errors.Is(err, services.ErrInstanceAlreadyCompleted):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrCycleDetected):
		apierrors.CycleDetected(c, err.Error())

	case errors.Is(err, services.ErrNotInstanceOwner):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrFaenaCustomerMismatch),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrRequiredPeopleBelowOne),
		errors.Is(err, services.ErrSelfDependency),
		errors.Is(err, services.ErrCrossServiceDependency),
		errors.Is(err, services.ErrInvalidDayNumber),
		errors.Is(err, services.ErrWorkOrderNotDeletable),
		errors.Is(err, services.ErrInvalidWorkOrderStatus),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrNoUserIDsProvided),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidFieldType),
		errors.Is(err, services.ErrInvalidFieldSchema),
		errors.Is(err, services.ErrLookupEntityRequired),
		errors.Is(err, services.ErrInstanceNotCompleted),
		errors.Is(err, services.ErrFieldTemplateMismatch),
		errors.Is(err, services.ErrMissingRequiredFields),
		errors.Is(err, services.ErrInstanceOriginUnavailable):
		apierrors.BadRequest(c, err.Error())

	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
