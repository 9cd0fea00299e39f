package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/usecase"
	"github.com/meetingtax/meetingtax/pkg/utils/errutil"
	"github.com/meetingtax/meetingtax/pkg/utils/safe"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// writeError maps the error class to an HTTP status and sends a JSON
// error body.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := errutil.StatusCode(err)
	if status >= http.StatusInternalServerError {
		errutil.Handle(ctx, err, "request failed")
		writeJSON(ctx, w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(ctx, w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(usecase.ErrValidation, "invalid request body", goerr.V("cause", err.Error()))
	}
	return nil
}
