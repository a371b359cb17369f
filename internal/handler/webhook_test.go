package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const courierXML = `<?xml version="1.0" encoding="UTF-8"?>
<order orderno="ORD-1007" state="accepted">
  <barcode>BC4215</barcode>
  <sender>
    <name>Ivan</name>
    <phone>+79990001122</phone>
  </sender>
</order>`

func TestCourierWebhook_MalformedXML(t *testing.T) {
	notifier := &stubNotifier{}
	h := newTestHandler(&stubService{}, notifier)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"plain text", "hello"},
		{"truncated", "<order><barcode>BC1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/webhook/courier", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.CourierWebhook(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), "invalid XML format") {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
		})
	}

	if len(notifier.sent) != 0 {
		t.Fatalf("notifier called %d times for malformed input", len(notifier.sent))
	}
}

func TestCourierWebhook_SendsNotification(t *testing.T) {
	notifier := &stubNotifier{}
	h := newTestHandler(&stubService{}, notifier)

	r := httptest.NewRequest("POST", "/api/webhook/courier", strings.NewReader(courierXML))
	w := httptest.NewRecorder()
	h.CourierWebhook(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(notifier.sent))
	}
	text := notifier.sent[0]
	for _, want := range []string{
		"• Orderno: ORD-1007",
		"• State: accepted",
		"• Barcode: BC4215",
		"• Name: Ivan",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("notification text missing %q:\n%s", want, text)
		}
	}

	body := w.Body.String()
	if !strings.Contains(body, `"orderno":"ORD-1007"`) {
		t.Fatalf("parsed data missing in response: %s", body)
	}
	if !strings.Contains(body, `"barcode":"BC4215"`) {
		t.Fatalf("parsed data missing in response: %s", body)
	}
}

func TestCourierWebhook_NotifierFailureIsNotFatal(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("telegram unavailable")}
	h := newTestHandler(&stubService{}, notifier)

	r := httptest.NewRequest("POST", "/api/webhook/courier", strings.NewReader(courierXML))
	w := httptest.NewRecorder()
	h.CourierWebhook(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Webhook processed successfully") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
