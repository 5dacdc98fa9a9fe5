package validator

import (
	"errors"

	stationsvalidator "voltslot/internal/stations/validator"
	"voltslot/pkg/logger"
	"voltslot/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	if err := stationsvalidator.RegisterDomainValidations(v); err != nil {
		log.Fatal("Failed to register reservation validators", "error", err)
	}

	log.Info("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ReservationValidator) Validate(reservation *model.Reservation) error {
	if err := v.validate.Struct(reservation); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return stationsvalidator.TranslateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) ValidateWaitlistEntry(entry *model.WaitlistEntry) error {
	if err := v.validate.Struct(entry); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return stationsvalidator.TranslateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}
