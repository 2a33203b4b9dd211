package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/football-hub/internal/usecase"
)

func decodeRaw(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestWriteSuccess_DataOnly(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeRaw(t, rec)
	if body["apiVersion"] != apiVersion {
		t.Fatalf("expected apiVersion=%s, got %v", apiVersion, body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_MappedMessageIsKept(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: unknown competition XYZ", usecase.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	errObj, ok := decodeRaw(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if errObj["status"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", errObj["status"])
	}
	if errObj["message"] != "resource not found: unknown competition XYZ" {
		t.Fatalf("unexpected message %v", errObj["message"])
	}
}

func TestWriteError_UnmappedMessageIsHidden(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("pq: relation \"matches\" does not exist"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	errObj, _ := decodeRaw(t, rec)["error"].(map[string]any)
	if errObj["message"] != "internal server error" {
		t.Fatalf("expected generic message, got %v", errObj["message"])
	}
}

func TestMapError_Statuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid", err: fmt.Errorf("%w: sort", usecase.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("%w: match 7", usecase.ErrNotFound), want: http.StatusNotFound},
		{name: "unauthorized", err: usecase.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "job running", err: fmt.Errorf("%w: standings", usecase.ErrJobRunning), want: http.StatusConflict},
		{name: "rate limited", err: errRateLimited, want: http.StatusTooManyRequests},
		{name: "unavailable", err: usecase.ErrDependencyUnavailable, want: http.StatusServiceUnavailable},
		{name: "unknown", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(tt.err).HTTPStatus; got != tt.want {
				t.Fatalf("mapError(%v)=%d want=%d", tt.err, got, tt.want)
			}
		})
	}
}
