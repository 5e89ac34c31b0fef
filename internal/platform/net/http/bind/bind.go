// Package bind provides JSON decode and validation helpers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	perr "dmphub/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

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

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// JSONOptions controls decode behavior
type JSONOptions struct {
	MaxBytes        int64 // default 64KB
	DisallowUnknown bool  // default false; upstream contracts may grow fields
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 64 << 10}
}

// DecodeJSON decodes JSON from r into T, validates it, and maps failures to project errors
// Used for upstream response bodies (e.g. the token refresh contract), so unknown
// fields are tolerated unless opted out
func DecodeJSON[T any](r io.Reader, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}

	lr := io.LimitReader(r, o.MaxBytes+1)
	dec := json.NewDecoder(lr)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var out T
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.Wrapf(err, perr.ErrorCodeJSON, "malformed json")
	}
	// a second value means trailing garbage
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validate(out); err != nil {
		return zero, err
	}
	return out, nil
}

// Validate runs struct validation and maps failures to a validation error with
// translated, comma-joined messages
func Validate(v any) error {
	svc := Get()
	err := svc.Validator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return perr.Wrapf(err, perr.ErrorCodeValidation, "validation failed")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(svc.Translator))
	}
	return perr.Newf(perr.ErrorCodeValidation, "%s", strings.Join(msgs, ", "))
}
