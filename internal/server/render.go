package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"rentreceipt/pkg/types"

	"github.com/sirupsen/logrus"
)

type messageResponse struct {
	Message string `json:"message"`
}

// failure holds the client facing messages for one operation.
type failure struct {
	notFound string
	internal string
}

var (
	receiptFailure = failure{notFound: "Lease not found", internal: "Error generating rent receipt"}
	listFailure    = failure{notFound: "Documents not found", internal: "Error retrieving documents"}
	deleteFailure  = failure{notFound: "File not found", internal: "Error during file deletion"}
)

func (s *Service) renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) renderMessage(w http.ResponseWriter, status int, message string) {
	s.renderJSON(w, status, messageResponse{Message: message})
}

// renderError maps err to a status code and a client safe message. Internal
// causes are only logged.
func (s *Service) renderError(w http.ResponseWriter, entry *logrus.Entry, err error, f failure) {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		entry.WithError(err).Warn("unauthorized request")
		s.renderMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, types.ErrForbidden):
		entry.WithError(err).Warn("forbidden request")
		s.renderMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, types.ErrValidation):
		entry.WithError(err).Info("invalid request")
		s.renderMessage(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, types.ErrNotFound):
		entry.WithError(err).Info("resource not found")
		s.renderMessage(w, http.StatusNotFound, f.notFound)
	default:
		entry.WithError(err).Error("request failed")
		s.renderMessage(w, http.StatusInternalServerError, f.internal)
	}
}

// validationMessage strips the sentinel suffix so only the specific reason is
// shown to the client.
func validationMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+types.ErrValidation.Error())
}
