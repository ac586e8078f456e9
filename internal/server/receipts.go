package server

import (
	"errors"
	"net/http"

	"rentreceipt/pkg/types"

	"github.com/sirupsen/logrus"
)

type rentReceiptResponse struct {
	PDFURL  string `json:"pdfUrl"`
	Message string `json:"message"`
}

// handlePostRentReceipt builds, renders and stores a receipt for the active
// lease of the requested accommodation. Every step is terminal on failure.
func (s *Service) handlePostRentReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry := s.logger.WithField("request_id", requestIDFromContext(ctx))

	identity, err := identityFromContext(ctx)
	if err != nil {
		s.renderError(w, entry, err, receiptFailure)
		return
	}
	entry = entry.WithField("user_id", identity.UserID)

	var req rentReceiptRequest
	err = s.decodeJSON(w, r, &req)
	if err == nil {
		err = s.checkBucket(req.BucketName)
	}
	if err == nil {
		err = checkUser(req.UserID, identity)
	}
	if err != nil {
		s.metrics.ReceiptsTotal.WithLabelValues("invalid").Inc()
		s.renderError(w, entry, err, receiptFailure)
		return
	}

	leaseID := *req.LeaseID
	entry = entry.WithField("lease_id", leaseID)

	data, err := s.receipts.Build(ctx, leaseID)
	if err != nil {
		outcome := "build_error"
		switch {
		case errors.Is(err, types.ErrNotFound):
			outcome = "not_found"
		case errors.Is(err, types.ErrIncompleteRecord):
			outcome = "incomplete"
		}
		s.metrics.ReceiptsTotal.WithLabelValues(outcome).Inc()
		s.renderError(w, entry, err, receiptFailure)
		return
	}

	pdf, err := s.renderer.Render(data)
	if err != nil {
		s.metrics.ReceiptsTotal.WithLabelValues("render_error").Inc()
		s.renderError(w, entry, err, receiptFailure)
		return
	}
	s.metrics.ReceiptBytes.Observe(float64(len(pdf)))

	doc, err := s.documents.Place(ctx, identity.UserID, leaseID, req.Filename, pdf)
	if err != nil {
		s.metrics.ReceiptsTotal.WithLabelValues("storage_error").Inc()
		s.renderError(w, entry, err, receiptFailure)
		return
	}

	s.metrics.ReceiptsTotal.WithLabelValues("stored").Inc()
	entry.WithFields(logrus.Fields{
		"key":   doc.Key,
		"bytes": len(pdf),
	}).Info("rent receipt stored")

	s.renderJSON(w, http.StatusOK, rentReceiptResponse{
		PDFURL:  doc.URL,
		Message: "Rent receipt generated",
	})
}
