package validation

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps go-playground/validator with English error translations.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator creates a Validator with the en locale registered.
func NewValidator() (*Validator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	translator, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("en translator not found")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}, nil
}

// ValidateStruct validates a payload struct and returns translated messages
// keyed by field, or nil when the payload is valid.
func (v *Validator) ValidateStruct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"payload": err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = fieldError.Translate(v.translator)
	}

	return fields
}
