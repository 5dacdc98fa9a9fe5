package errors

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "voltslot/pkg/errors"
	"voltslot/pkg/model"
)

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")
)

// Machine-readable admission rejection codes. Clients branch on these, so
// the strings are part of the API contract.
const (
	CodeStationUnavailable        = "STATION_UNAVAILABLE"
	CodeInvalidVehicleClass       = "INVALID_VEHICLE_CLASS"
	CodeInvalidDate               = "INVALID_DATE"
	CodeInvalidDuration           = "INVALID_DURATION"
	CodeSlotFull                  = "SLOT_FULL"
	CodeRiderBookingLimitExceeded = "RIDER_BOOKING_LIMIT_EXCEEDED"
	CodeDuplicateVehicleBooking   = "DUPLICATE_VEHICLE_BOOKING"
	CodeInvalidStateTransition    = "INVALID_STATE_TRANSITION"
)

func StationUnavailable(stationID string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeStationUnavailable,
		Message:    "Station is not accepting reservations",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"station_id": stationID,
		},
	}
}

func InvalidVehicleClass(class string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeInvalidVehicleClass,
		Message:    "Station does not serve this vehicle class",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"vehicle_class": class,
		},
	}
}

func InvalidDate(date string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeInvalidDate,
		Message:    "Reservation date is in the past or malformed",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"date": date,
		},
	}
}

func InvalidDuration(duration, maxDuration int) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeInvalidDuration,
		Message:    fmt.Sprintf("Duration must be between 1 and %d hours", maxDuration),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"duration_hours": duration,
			"max_duration":   maxDuration,
		},
	}
}

// SlotFull reports an overlap-count rejection. Used and capacity go into
// the details so riders see how contended the slot is.
func SlotFull(used, capacity int) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeSlotFull,
		Message:    "No free slots for the requested time",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"used":     used,
			"capacity": capacity,
		},
	}
}

func RiderBookingLimitExceeded(limit int) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeRiderBookingLimitExceeded,
		Message:    fmt.Sprintf("Rider already has %d active reservations", limit),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"limit": limit,
		},
	}
}

func DuplicateVehicleBooking(vehicleNumber string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeDuplicateVehicleBooking,
		Message:    "This vehicle already has an active reservation",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"vehicle_number": vehicleNumber,
		},
	}
}

func InvalidStateTransition(from, to model.ReservationStatus) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       CodeInvalidStateTransition,
		Message:    fmt.Sprintf("Cannot transition reservation from %s to %s", from, to),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"from": string(from),
			"to":   string(to),
		},
	}
}

// StoreTimeout is the only retryable admission failure; every other
// rejection is final for the submitted request.
func StoreTimeout(err error) *apperrors.AppError {
	return &apperrors.AppError{
		Code:       apperrors.CodeTimeout,
		Message:    "Reservation store timed out, the request may be retried",
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}
