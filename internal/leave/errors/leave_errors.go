package leaveerrors

import (
	"net/http"

	"github.com/Anuradha654321/faculty-leave-system/internal/shared/apperror"
)

var (
	ErrMalformedPeriod = apperror.New(
		apperror.CodeMalformedPeriod,
		"leave period is empty or not a valid date",
		http.StatusBadRequest,
	)
	ErrMissingLeaveType = apperror.New(
		apperror.CodeMissingField,
		"leave_type_id is required",
		http.StatusBadRequest,
	)
	ErrMissingPeriod = apperror.New(
		apperror.CodeMissingField,
		"leave period is required",
		http.StatusBadRequest,
	)
	ErrMissingReason = apperror.New(
		apperror.CodeMissingField,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrMissingPermissionSlot = apperror.New(
		apperror.CodeMissingField,
		"permission_slot is required for permission leave",
		http.StatusBadRequest,
	)
	ErrInvalidPermissionSlot = apperror.New(
		apperror.CodeInvalidInput,
		"permission_slot must be morning or evening",
		http.StatusBadRequest,
	)
	ErrNonPositiveDays = apperror.New(
		apperror.CodeMissingField,
		"total_days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrOverlappingApplication = apperror.New(
		apperror.CodeOverlapping,
		"an application already exists for an overlapping period",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance for the requested period",
		http.StatusUnprocessableEntity,
	)
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave application not found",
		http.StatusNotFound,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"application can no longer be cancelled",
		http.StatusBadRequest,
	)
	ErrApplyNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"this role cannot submit leave applications",
		http.StatusForbidden,
	)
)
