package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pulseboard/pulseboard/kit/platform/errors"
	kithttp "github.com/pulseboard/pulseboard/kit/transport/http"
)

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "not found",
			err:         &errors.Error{Code: errors.ENotFound, Msg: "tenant not found"},
			wantStatus:  http.StatusNotFound,
			wantCode:    errors.ENotFound,
			wantMessage: "tenant not found",
		},
		{
			name:        "conflict",
			err:         &errors.Error{Code: errors.EConflict, Msg: "ID already exists"},
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    errors.EConflict,
			wantMessage: "ID already exists",
		},
		{
			name: "forbidden masks the reason",
			err: &errors.Error{
				Code: errors.EForbidden,
				Msg:  "forbidden",
				Err:  fmt.Errorf("module kpis is not allowed for tenant 0000000000000001"),
			},
			wantStatus:  http.StatusForbidden,
			wantCode:    errors.EForbidden,
			wantMessage: "forbidden",
		},
		{
			name:        "expired maps to forbidden",
			err:         &errors.Error{Code: errors.EExpired, Msg: "invitation expired"},
			wantStatus:  http.StatusForbidden,
			wantCode:    errors.EExpired,
			wantMessage: "invitation expired",
		},
		{
			name:        "not implemented",
			err:         &errors.Error{Code: errors.ENotImplemented, Msg: "formula evaluation is not supported"},
			wantStatus:  http.StatusNotImplemented,
			wantCode:    errors.ENotImplemented,
			wantMessage: "formula evaluation is not supported",
		},
		{
			name:        "opaque error",
			err:         fmt.Errorf("something broke"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    errors.EInternal,
			wantMessage: "An internal error has occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			kithttp.ErrorHandler(0).HandleHTTPError(context.Background(), tt.err, w)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get(kithttp.PlatformErrorCodeHeader); got != tt.wantCode {
				t.Fatalf("expected error code header %q, got %q", tt.wantCode, got)
			}

			var body struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Message != tt.wantMessage {
				t.Fatalf("expected message %q, got %q", tt.wantMessage, body.Message)
			}
		})
	}
}
