// Package validation wraps go-playground/validator with devcat's custom tags
// and English messages. Field names come from the `cli` struct tag when set,
// so errors read like the flag or manifest key the user typed.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/devcat-io/devcat/internal/validation/files"
)

// rule is a custom tag. A nil check only replaces the message of a built-in tag.
type rule struct {
	check   validator.Func
	message string
}

var rules = map[string]rule{
	"collection_name": {isCollectionName, "{0} must start with a lowercase letter, contain only lowercase letters, digits and dashes, and not end with a dash: {1}"},
	"not_blank":       {isNotBlank, "{0} must contain more than whitespace"},
	"path_read":       {files.IsReadable, "{0} must be a readable path: {1}"},
	"release_version": {isReleaseVersion, "{0} must be a MAJOR.MINOR.PATCH version: {1}"},
	"semver_strict":   {isStrictSemver, "{0} must be a valid semantic version: {1}"},
	"tag_token":       {isTagToken, "{0} must be lowercase dash-separated words: {1}"},

	"dir": {nil, "{0} must be a valid existing directory: {1}"},
}

type ValidationError struct {
	Field  string
	Detail string
}

func (e ValidationError) Error() string {
	return e.Detail
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation error\n")
	for _, err := range ve {
		b.WriteString(err.Detail)
		b.WriteByte('\n')
	}
	return b.String()
}

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() (*Validator, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("cli"); name != "" {
			return name
		}
		return fld.Name
	})

	enLocale := en.New()
	trans, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		return nil, errors.New("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	v := &Validator{validate: validate, trans: trans}
	for tag, r := range rules {
		if r.check != nil {
			if err := validate.RegisterValidation(tag, r.check); err != nil {
				return nil, fmt.Errorf("failed to register %s: %w", tag, err)
			}
		}
		if err := v.SetMessage(tag, r.message); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// SetMessage replaces the message for tag. {0} is the field name and {1} the
// offending value.
func (v *Validator) SetMessage(tag, msg string) error {
	err := v.validate.RegisterTranslation(tag, v.trans,
		func(t ut.Translator) error {
			return t.Add(tag, msg, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fmt.Sprintf("%v", fe.Value()))
			return s
		},
	)
	if err != nil {
		return fmt.Errorf("failed to register message for %s: %w", tag, err)
	}
	return nil
}

// Struct validates s. The returned error lists the translated messages and
// wraps validator.ValidationErrors.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var msg strings.Builder
	for _, e := range verrs {
		msg.WriteString(e.Translate(v.trans))
		msg.WriteByte('\n')
	}
	return fmt.Errorf("validation error:\n%s: %w", msg.String(), verrs)
}

// ParseValidationErrors turns an error from Struct into one entry per failed
// field, keyed by struct namespace. Other errors yield an empty slice.
func (v *Validator) ParseValidationErrors(err error) ValidationErrors {
	ves := ValidationErrors{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			ves = append(ves, ValidationError{
				Field:  verr.StructNamespace(),
				Detail: verr.Translate(v.trans),
			})
		}
	}
	return ves
}
