package handler

import "net/http"

// CourierStats возвращает агрегаты курьерских доставок за сегодня, вчера,
// текущий и прошлый месяц.
func (h *Handler) CourierStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CourierStats(r.Context())
	if err != nil {
		h.respondError(w, "courier stats error", err)
		return
	}

	h.respondData(w, http.StatusOK, stats)
}
