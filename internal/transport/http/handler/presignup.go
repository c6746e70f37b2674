package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-presignup-gate/internal/domain"
)

// maxEventBytes bounds the request body; real Cognito events are a few KB.
const maxEventBytes = 64 << 10

type preSignUpInvoker interface {
	Handle(ctx context.Context, ev events.CognitoEventUserPoolsPreSignup) (events.CognitoEventUserPoolsPreSignup, error)
}

// PreSignUpHandler runs the pre-signup hook over HTTP for local use.
type PreSignUpHandler struct {
	hook   preSignUpInvoker
	logger *slog.Logger
}

func NewPreSignUpHandler(hook preSignUpInvoker, logger *slog.Logger) *PreSignUpHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreSignUpHandler{hook: hook, logger: logger}
}

func (h *PreSignUpHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	var ev events.CognitoEventUserPoolsPreSignup
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.hook.Handle(r.Context(), ev)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "pre-signup hook failed", "err", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
