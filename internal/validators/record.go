package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-rest-api/models"
)

var (
	linkRewritePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	personNamePattern  = regexp.MustCompile(`^[^0-9!<>,;?=+()@#"°{}_$%:]*$`)
)

const forbiddenCatalogChars = "<>;=#{}"

// Record is a decoded record of a resource ready to be checked.
type Record struct {
	Descriptor *models.ResourceDescriptor
	Record     models.Record
	// Create enables the RequiredOnCreate checks.
	Create bool
	// DefaultLanguage is the language a required translatable field must be
	// filled in.
	DefaultLanguage string
}

type RecordValidator struct {
	validate *validator.Validate
}

// NewRecordValidator returns a Validator for [Record] values and the auth
// request models.
func NewRecordValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("catalogname", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), forbiddenCatalogChars)
	})
	_ = v.RegisterValidation("linkrewrite", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || linkRewritePattern.MatchString(s)
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})

	return &RecordValidator{validate: v}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case Record:
		return v.validateRecord(ctx, value, fields...)
	case *Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.RegisterRequest, *models.RegisterRequest,
		models.LoginRequest, *models.LoginRequest,
		models.RefreshRequest, *models.RefreshRequest,
		models.APIKeyRequest, *models.APIKeyRequest,
		models.SocialLoginRequest, *models.SocialLoginRequest:
		return v.validateRequest(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRequest(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	out := &FieldErrors{}
	for _, fe := range fieldErrs {
		out.add("%s: %s", fe.Field(), ruleMessage(fe))
	}
	return out.orNil()
}

func (v *RecordValidator) validateRecord(ctx context.Context, in Record, fields ...string) error {
	d := in.Descriptor
	if d == nil {
		return ErrUnsupportedType
	}
	for _, f := range fields {
		if _, ok := d.Field(f); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	out := &FieldErrors{}
	for _, spec := range d.Fields {
		if len(fields) > 0 && !slices.Contains(fields, spec.Name) {
			continue
		}
		if spec.ReadOnly {
			continue
		}

		// own columns are NOT NULL
		if value, ok := in.Record.Fields[spec.Name]; ok && value == nil && !spec.Translatable {
			out.add("%s: must not be null", spec.Name)
			continue
		}

		if in.Create && slices.Contains(d.RequiredOnCreate, spec.Name) {
			v.checkRequired(out, spec, in)
		}

		if spec.Rules == "" {
			continue
		}
		if spec.Translatable {
			for _, lang := range sortedLanguages(in.Record.Translations) {
				value, ok := in.Record.Translations.Get(lang, spec.Name)
				if !ok {
					continue
				}
				if err := v.validate.VarCtx(ctx, value, spec.Rules); err != nil {
					out.add("%s.%s: %s", spec.Name, lang, varMessage(err))
				}
			}
			continue
		}

		value, ok := in.Record.Fields[spec.Name]
		if !ok {
			continue
		}
		if err := v.validate.VarCtx(ctx, ruleValue(value), spec.Rules); err != nil {
			out.add("%s: %s", spec.Name, varMessage(err))
		}
	}

	return out.orNil()
}

func (v *RecordValidator) checkRequired(out *FieldErrors, spec models.FieldSpec, in Record) {
	if spec.Translatable {
		if value, _ := in.Record.Translations.Get(in.DefaultLanguage, spec.Name); strings.TrimSpace(value) == "" {
			out.add("%s: is required for the default language (%s)", spec.Name, in.DefaultLanguage)
		}
		return
	}

	value, ok := in.Record.Fields[spec.Name]
	if s, isString := value.(string); !ok || value == nil || (isString && strings.TrimSpace(s) == "") {
		out.add("%s: is required", spec.Name)
	}
}

// ruleValue maps store kinds to values validator tags understand.
func ruleValue(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case time.Time:
		return v.Unix()
	}
	return value
}

func sortedLanguages(t models.Translations) []string {
	langs := make([]string, 0, len(t))
	for lang := range t {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

func varMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return ruleMessage(fieldErrs[0])
	}
	return "is invalid"
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "catalogname":
		return "must not contain any of " + forbiddenCatalogChars
	case "linkrewrite":
		return "must contain only letters, digits and dashes"
	case "personname":
		return "contains invalid characters"
	case "numeric":
		return "must contain only digits"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters long"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters long"
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "len":
		return "must be exactly " + fe.Param() + " characters long"
	}
	return "failed the " + fe.Tag() + " rule"
}
