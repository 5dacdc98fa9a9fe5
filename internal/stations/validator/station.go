package validator

import (
	"errors"
	"fmt"
	"strings"

	"voltslot/pkg/logger"
	"voltslot/pkg/model"
	"voltslot/pkg/timeslot"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type StationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewStationValidator(log *logger.Logger) *StationValidator {
	v := validator.New()

	if err := RegisterDomainValidations(v); err != nil {
		log.Fatal("Failed to register station validators", "error", err)
	}

	log.Info("Station validator initialized successfully")

	return &StationValidator{
		validate: v,
		logger:   log,
	}
}

// RegisterDomainValidations registers the shared custom tags on a validator
// instance. The reservation validator reuses the same set.
func RegisterDomainValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("capacity_map", validateCapacityMap); err != nil {
		return fmt.Errorf("capacity_map: %w", err)
	}
	if err := v.RegisterValidation("vehicle_class", validateVehicleClass); err != nil {
		return fmt.Errorf("vehicle_class: %w", err)
	}
	if err := v.RegisterValidation("slot_date", validateSlotDate); err != nil {
		return fmt.Errorf("slot_date: %w", err)
	}
	return nil
}

// validateCapacityMap accepts per-class slot counts. Every key must be a
// recognized vehicle class and every count non-negative; at least one class
// must offer a slot, otherwise the station can never admit anything.
func validateCapacityMap(fl validator.FieldLevel) bool {
	value := fl.Field()
	if value.IsNil() {
		return false
	}

	capacity, ok := value.Interface().(map[model.VehicleClass]int)
	if !ok {
		return false
	}

	if len(capacity) == 0 {
		return false
	}

	total := 0
	for class, count := range capacity {
		if _, known := model.ParseVehicleClass(string(class)); !known {
			return false
		}
		if count < 0 {
			return false
		}
		total += count
	}
	return total > 0
}

func validateVehicleClass(fl validator.FieldLevel) bool {
	_, ok := model.ParseVehicleClass(fl.Field().String())
	return ok
}

func validateSlotDate(fl validator.FieldLevel) bool {
	_, err := timeslot.ParseDate(fl.Field().String())
	return err == nil
}

func (v *StationValidator) Validate(station *model.Station) error {
	if err := v.validate.Struct(station); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return TranslateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *StationValidator) ValidateUpdate(update *model.StationUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return TranslateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func TranslateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "capacity_map":
			message = fmt.Sprintf("%s must map recognized vehicle classes to non-negative slot counts, with at least one slot", err.Field())
		case "vehicle_class":
			message = fmt.Sprintf("%s must be a recognized vehicle class", err.Field())
		case "slot_date":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
