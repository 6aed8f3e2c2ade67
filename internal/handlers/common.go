package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warnw("Failed to write response", "error", err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"detail": message})
}

// validateStruct runs the struct tags and flattens failures into one message
func (h *Handler) validateStruct(s interface{}) error {
	err := h.validator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			// Only a nil pointer means the field was absent; any other kind
			// was sent with its zero value
			if fe.Kind() == reflect.Ptr {
				msgs = append(msgs, fmt.Sprintf("%s: field required", fe.Field()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s: must not be %v", fe.Field(), fe.Value()))
			}
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
