package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/nvago/internal/pkg/strcase"
)

// letters, digits and @/./+/-/_ only
var reUsername = regexp.MustCompile(`^[\w.@+-]+$`)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match the JSON request fields.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerRules(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	errV10 := make(V10ValidationError, len(validateErrs))
	for _, fe := range validateErrs {
		key := strcase.ToLowerSnake(fe.Field())
		if _, exists := errV10[key]; !exists {
			errV10[key] = fe.Translate(v.translator)
		}
	}

	return errV10
}

type translation struct {
	tag  string
	text string
	// withParam passes the tag parameter (e.g. the max length) as {0}
	withParam bool
}

func registerRules(validate *validator.Validate, enTrans ut.Translator) error {
	if err := validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && reUsername.MatchString(s)
	}); err != nil {
		return err
	}

	overrides := []translation{
		{tag: "required", text: "This field is required."},
		{tag: "email", text: "Enter a valid email address."},
		{tag: "username", text: "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."},
		{tag: "max", text: "Ensure this field has no more than {0} characters.", withParam: true},
		{tag: "len", text: "Ensure this field has exactly {0} characters.", withParam: true},
		{tag: "numeric", text: "Ensure this field contains only digits."},
	}

	for _, o := range overrides {
		if err := validate.RegisterTranslation(o.tag, enTrans,
			func(t ut.Translator) error {
				return t.Add(o.tag, o.text, true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				var (
					msg string
					err error
				)
				if o.withParam {
					msg, err = t.T(fe.Tag(), fe.Param())
				} else {
					msg, err = t.T(fe.Tag())
				}
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		); err != nil {
			return err
		}
	}

	return nil
}
