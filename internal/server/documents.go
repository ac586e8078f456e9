package server

import (
	"fmt"
	"net/http"

	"rentreceipt/pkg/types"
)

type documentsResponse struct {
	Documents []*types.StoredDocument `json:"documents"`
}

func (s *Service) handleGetDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry := s.logger.WithField("request_id", requestIDFromContext(ctx))

	identity, err := identityFromContext(ctx)
	if err != nil {
		s.renderError(w, entry, err, listFailure)
		return
	}
	entry = entry.WithField("user_id", identity.UserID)

	var query documentsQuery
	err = decoder.Decode(&query, r.URL.Query())
	if err != nil {
		s.renderError(w, entry, fmt.Errorf("invalid query: %w", types.ErrValidation), listFailure)
		return
	}

	err = s.validateStruct(&query)
	if err == nil {
		err = s.checkBucket(query.BucketName)
	}
	if err != nil {
		s.renderError(w, entry, err, listFailure)
		return
	}

	documents, err := s.documents.List(ctx, identity.UserID)
	if err != nil {
		s.renderError(w, entry, err, listFailure)
		return
	}

	s.renderJSON(w, http.StatusOK, documentsResponse{Documents: documents})
}

func (s *Service) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry := s.logger.WithField("request_id", requestIDFromContext(ctx))

	identity, err := identityFromContext(ctx)
	if err != nil {
		s.renderError(w, entry, err, deleteFailure)
		return
	}

	filename := r.PathValue("filename")
	entry = entry.WithField("user_id", identity.UserID).WithField("filename", filename)

	var req documentRequest
	err = s.decodeJSON(w, r, &req)
	if err == nil {
		err = s.checkBucket(req.BucketName)
	}
	if err == nil {
		err = checkUser(req.UserID, identity)
	}
	if err != nil {
		s.renderError(w, entry, err, deleteFailure)
		return
	}

	err = s.documents.Delete(ctx, identity.UserID, filename)
	if err != nil {
		s.renderError(w, entry, err, deleteFailure)
		return
	}

	s.metrics.DocumentsDeleted.Inc()
	entry.Info("document deleted")

	s.renderMessage(w, http.StatusOK, fmt.Sprintf("The file %s has been deleted.", filename))
}
