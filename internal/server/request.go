package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"rentreceipt/pkg/types"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 64 << 10

var errInvalidUserID = errors.New("userId must be an integer or a numeric string")

// flexibleID accepts 42 as well as "42".
type flexibleID int64

func (id *flexibleID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}

	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return errInvalidUserID
	}

	*id = flexibleID(v)
	return nil
}

type rentReceiptRequest struct {
	LeaseID    *int64      `json:"leaseId" validate:"required,gt=0"`
	BucketName string      `json:"bucketName" validate:"omitempty,max=255"`
	UserID     *flexibleID `json:"userId"`
	Filename   string      `json:"filename" validate:"omitempty,max=200"`
}

type documentRequest struct {
	BucketName string      `json:"bucketName" validate:"omitempty,max=255"`
	UserID     *flexibleID `json:"userId"`
}

type documentsQuery struct {
	BucketName string `form:"bucketName" validate:"omitempty,max=255"`
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})

	return validate
}

// decodeJSON reads an optional JSON body into dst and validates it. An empty
// body leaves dst untouched before validation.
func (s *Service) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.Is(err, errInvalidUserID):
		return fmt.Errorf("%s: %w", errInvalidUserID.Error(), types.ErrValidation)
	default:
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("%s must be %s: %w", typeErr.Field, jsonKind(typeErr.Type), types.ErrValidation)
		}
		return fmt.Errorf("invalid request body: %w", types.ErrValidation)
	}

	return s.validateStruct(dst)
}

func (s *Service) validateStruct(dst any) error {
	err := s.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("invalid request: %w", types.ErrValidation)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required: %w", fe.Field(), types.ErrValidation)
	case "gt":
		return fmt.Errorf("%s must be greater than %s: %w", fe.Field(), fe.Param(), types.ErrValidation)
	case "max":
		return fmt.Errorf("%s must be at most %s characters: %w", fe.Field(), fe.Param(), types.ErrValidation)
	default:
		return fmt.Errorf("%s is invalid: %w", fe.Field(), types.ErrValidation)
	}
}

// checkBucket accepts an empty name or the configured bucket.
func (s *Service) checkBucket(name string) error {
	if name == "" || name == s.documents.Bucket() {
		return nil
	}
	return fmt.Errorf("bucketName does not match the configured bucket: %w", types.ErrValidation)
}

// checkUser accepts an absent id or the id of the verified caller.
func checkUser(requested *flexibleID, identity *types.Identity) error {
	if requested == nil || int64(*requested) == identity.UserID {
		return nil
	}
	return fmt.Errorf("userId %d does not match the authenticated user: %w", int64(*requested), types.ErrForbidden)
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	default:
		return "a " + t.Kind().String()
	}
}
