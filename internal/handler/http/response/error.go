package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/auth"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/correction"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/leave"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/shift"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/site"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/user"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Double clock events return the existing timestamp so clients can show
	// an "already done" state instead of a dead end.
	var clockedIn *attendance.AlreadyClockedInError
	if errors.As(err, &clockedIn) {
		BadRequest(w, err.Error(), map[string]string{
			"existing_clock_in": clockedIn.ExistingClockIn.Format(time.RFC3339),
		})
		return
	}
	var clockedOut *attendance.AlreadyClockedOutError
	if errors.As(err, &clockedOut) {
		BadRequest(w, err.Error(), map[string]string{
			"existing_clock_out": clockedOut.ExistingClockOut.Format(time.RFC3339),
		})
		return
	}
	var reviewed *correction.AlreadyReviewedError
	if errors.As(err, &reviewed) {
		BadRequest(w, err.Error(), map[string]string{
			"current_status": string(reviewed.CurrentStatus),
		})
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrMissingClaims):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrEmployeeRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())

	// Clock-in / clock-out errors. Business-rule violations are 400s the
	// caller can act on, not conflicts or permission failures.
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrLockedForPayroll),
		errors.Is(err, attendance.ErrOutsideClockInRange),
		errors.Is(err, attendance.ErrOutsideClockOutRange),
		errors.Is(err, leave.ErrOnApprovedLeave),
		errors.Is(err, leave.ErrPublicHoliday),
		errors.Is(err, attendance.ErrOnLeaveOrHoliday):
		BadRequest(w, err.Error(), nil)
	// A record that exists but belongs to someone else is indistinguishable
	// from one that does not exist.
	case errors.Is(err, attendance.ErrRecordNotFound),
		errors.Is(err, attendance.ErrNotRecordOwner):
		NotFound(w, err.Error())

	// Overtime errors
	case errors.Is(err, overtime.ErrNoClockOutYet),
		errors.Is(err, overtime.ErrSiteMismatch),
		errors.Is(err, overtime.ErrOutsideOTRange),
		errors.Is(err, overtime.ErrNotCompleted),
		errors.Is(err, overtime.ErrActiveSessionExists),
		errors.Is(err, overtime.ErrSessionNotActive),
		errors.Is(err, overtime.ErrAlreadyApproved):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, overtime.ErrSessionNotFound):
		NotFound(w, err.Error())

	// Correction errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, correction.ErrReasonTooShort):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, correction.ErrNotAuthorized):
		Forbidden(w, err.Error())

	// Reference data errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, site.ErrSiteInactive):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrNoEffectiveShift):
		NotFound(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
