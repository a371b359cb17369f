package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/parceltrack/parcel-tracker/internal/webhook"
)

// CourierWebhook принимает XML-уведомление курьерской системы и пересылает
// его текстом в чат. Сбой доставки уведомления не считается ошибкой вебхука.
func (h *Handler) CourierWebhook(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondBadRequest(w, "invalid XML format")
		return
	}

	n, err := webhook.Parse(raw)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidXML) {
			h.respondBadRequest(w, "invalid XML format")
			return
		}
		h.respondError(w, "parse webhook error", err)
		return
	}

	if err := h.notifier.Send(r.Context(), n.Text); err != nil {
		h.logger.Warn("send webhook notification error", zap.Error(err))
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "Webhook processed successfully",
		Data:    n.Data,
	})
}
