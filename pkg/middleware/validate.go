package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"movies-api/pkg/apperr"
	"movies-api/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// Target names the part of the request a schema is checked against.
type Target string

const (
	TargetBody   Target = "body"
	TargetParams Target = "params"
	TargetQuery  Target = "query"
)

const maxBodyBytes = 1 << 20

type validatedKey[T any] struct{}

// Validate decodes the target part of the request into a T, checks it against
// T's validate tags and stores the result for ValidatedFrom. T must be a struct.
// Body fields are read by json tag, params by `param` tag, query by `query` tag.
func Validate[T any](target Target, errs *ErrorPipeline) func(http.Handler) http.Handler {
	if target == "" {
		target = TargetBody
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := new(T)

			var err error
			switch target {
			case TargetBody:
				err = decodeBody(w, r, value)
			case TargetParams:
				err = decodeTagged(value, "param", func(name string) []string {
					if v := chi.URLParam(r, name); v != "" {
						return []string{v}
					}
					return nil
				})
			case TargetQuery:
				query := r.URL.Query()
				err = decodeTagged(value, "query", func(name string) []string {
					return query[name]
				})
			default:
				err = fmt.Errorf("unknown validation target %q", target)
			}
			if err != nil {
				errs.Fail(w, r, err)
				return
			}

			if fieldErrs := utils.ValidateStruct(value); len(fieldErrs) > 0 {
				errs.Fail(w, r, apperr.Validation(
					fmt.Sprintf("invalid request %s: %s", target, utils.FormatValidationErrors(fieldErrs)),
					fieldErrs,
				))
				return
			}

			ctx := context.WithValue(r.Context(), validatedKey[T]{}, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidatedFrom returns the value stored by Validate[T].
func ValidatedFrom[T any](ctx context.Context) (*T, bool) {
	value, ok := ctx.Value(validatedKey[T]{}).(*T)
	return value, ok
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return bodyError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.Validation("request body must only contain a single JSON value",
			map[string]string{"body": "Must contain a single JSON value"})
	}

	return nil
}

func bodyError(err error) *apperr.Error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return apperr.Validation("request body must not be empty",
			map[string]string{"body": "This field is required"})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Validation("request body contains badly-formed JSON",
			map[string]string{"body": "Malformed JSON"})
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.Validation(fmt.Sprintf("request body contains an incorrect type for %q", field),
			map[string]string{field: "Must be of type " + typeErr.Type.String()})
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperr.Validation(fmt.Sprintf("request body contains unknown field %q", field),
			map[string]string{field: "Unknown field"})
	case errors.As(err, &maxBytesErr):
		return apperr.Validation("request body is too large",
			map[string]string{"body": fmt.Sprintf("Must not be larger than %d bytes", maxBytesErr.Limit)})
	default:
		return apperr.Validation("request body could not be decoded",
			map[string]string{"body": err.Error()})
	}
}

// decodeTagged fills dst's fields from lookup(tag value). Supported field kinds
// are string, int, bool and []string; slice values may be comma separated.
func decodeTagged(dst any, tag string, lookup func(name string) []string) error {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	details := map[string]string{}

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}

		values := lookup(name)
		if len(values) == 0 {
			continue
		}

		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(values[0])
		case reflect.Int, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(values[0], 10, 64)
			if err != nil {
				details[name] = "Must be an integer"
				continue
			}
			fv.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(values[0])
			if err != nil {
				details[name] = "Must be a boolean"
				continue
			}
			fv.SetBool(b)
		case reflect.Slice:
			if fv.Type().Elem().Kind() != reflect.String {
				return fmt.Errorf("unsupported %s field type %s", tag, fv.Type())
			}
			var items []string
			for _, v := range values {
				for _, item := range strings.Split(v, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
			}
			fv.Set(reflect.ValueOf(items))
		default:
			return fmt.Errorf("unsupported %s field type %s", tag, fv.Type())
		}
	}

	if len(details) > 0 {
		return apperr.Validation(fmt.Sprintf("invalid request %ss: %s", tag, utils.FormatValidationErrors(details)), details)
	}
	return nil
}
