package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EventIDLength keeps share links short. Collisions are retried by the
// service.
const EventIDLength = 8

func GenerateEventID() string {
	return uuid.New().String()[:EventIDLength]
}

// StringTrim trims spaces and the stray quotes clients sometimes leave
// around path parameters.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'")
	return strings.TrimSpace(s)
}

// DateOnly drops any time portion from an ISO date, so "2023-10-28T00:00:00Z"
// becomes "2023-10-28".
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// ValidationMessage turns validator errors into "field: rule" text that can
// be shown to a user as-is.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must match %s", field, fe.Param()))
		case "unique":
			msgs = append(msgs, fmt.Sprintf("%s must not contain duplicates", field))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must have %s %s", field, fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
