package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/pulse-analytics/pkg/errors"
	"github.com/angelmondragon/pulse-analytics/pkg/logger"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "company"})
	WriteError(context.Background(), logger.Nop(), w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	body := decodeError(t, w)
	if body["code"] != string(pkgerrors.CodeValidation) || body["error"] != "bad input" {
		t.Fatalf("unexpected body %v", body)
	}
	if body["details"] == nil {
		t.Fatalf("expected details in public payload")
	}
	if _, ok := body["rawResponse"]; ok {
		t.Fatal("rawResponse must be absent for validation errors")
	}
}

func TestWriteErrorIncludesRawForParseFailures(t *testing.T) {
	for _, code := range []pkgerrors.Code{pkgerrors.CodeNoJSONFound, pkgerrors.CodeMalformedJSON} {
		w := httptest.NewRecorder()
		WriteError(context.Background(), nil, w, pkgerrors.New(code, "parse").WithRawResponse("{oops"))

		if w.Code != http.StatusBadGateway {
			t.Fatalf("%s: expected 502, got %d", code, w.Code)
		}
		body := decodeError(t, w)
		if body["rawResponse"] != "{oops" {
			t.Fatalf("%s: expected raw response, got %v", code, body)
		}
	}
}

func TestWriteErrorHidesRawForExternalCall(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeExternalCall, "down").WithRawResponse("secret"))

	body := decodeError(t, w)
	if _, ok := body["rawResponse"]; ok {
		t.Fatalf("raw response leaked: %v", body)
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	body := decodeError(t, w)
	if body["code"] != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %v", body["code"])
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal error text leaked: %v", body["error"])
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

func TestErrorBodyWithoutWriter(t *testing.T) {
	status, body := ErrorBody(pkgerrors.New(pkgerrors.CodeMissingIdentifier, "company is required"))
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body.Code != "MISSING_IDENTIFIER" || body.RawResponse != nil {
		t.Fatalf("unexpected body %+v", body)
	}
}
