// Package bind provides JSON decode and validation helpers for inbound and outbound payloads
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	perr "wikicord/internal/platform/errors"
	"wikicord/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// UT aliases ut.Translator
type UT = ut.Translator

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// short messages for min and max
		registerShortMin(v, trans)
		registerShortMax(v, trans)

		// platform ids
		_ = v.RegisterValidation("snowflake", isSnowflake)
		registerSnowflake(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	return Init()
}

// RegisterValidation registers a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// Options controls decoding behavior
type Options struct {
	DisallowUnknown bool // default false; platform payloads grow fields over time
	AllowEmpty      bool // default false
}

// Decode parses exactly one JSON value from data into T and validates it
// failures map to perr JSON (syntax, type, trailing data) or Validation (tags) codes
func Decode[T any](data []byte, opts ...Options) (T, error) {
	var zero T
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if o.AllowEmpty {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "invalid JSON")
	}
	if trailing(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Read drains at most limit bytes from r and decodes them with Decode
// a body larger than limit is rejected rather than truncated
func Read[T any](r io.Reader, limit int64, opts ...Options) (T, error) {
	var zero T
	if limit <= 0 {
		limit = 1 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeUnavailable, "read body")
	}
	if int64(len(data)) > limit {
		return zero, perr.JSONErrf("body exceeds %d bytes", limit)
	}
	return Decode[T](data, opts...)
}

// Validate runs struct tags on v; non-struct values have nothing to validate
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := Get().Validator.Struct(rv.Interface())
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// trailing reports whether anything other than whitespace follows the first value
var trailing = func(dec *json.Decoder) bool {
	var extra json.RawMessage
	return !errors.Is(dec.Decode(&extra), io.EOF)
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// As re-exports errors.As to reduce import noise at call sites
func As(err error, target any) bool { return errors.As(err, target) }

// isSnowflake accepts a decimal id of 1..20 digits
func isSnowflake(fl FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > 20 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// custom translations with short messages

func registerShortMin(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("min", trans,
		func(ut ut.Translator) error {
			return ut.Add("min", "{0} must be at least {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("min", fe.Field(), fe.Param())
			return msg
		},
	)
}

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}

func registerSnowflake(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("snowflake", trans,
		func(ut ut.Translator) error {
			return ut.Add("snowflake", "{0} must be a numeric id", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("snowflake", fe.Field())
			return msg
		},
	)
}
