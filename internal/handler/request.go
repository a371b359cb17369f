package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// intQueryParam возвращает числовой query-параметр или значение по умолчанию,
// если параметр отсутствует или не является числом.
func intQueryParam(r *http.Request, key string, def int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

// pageFromRequest читает параметры пагинации: per_page ограничивается
// диапазоном [1, 100] (по умолчанию 20), page — не меньше 1.
func pageFromRequest(r *http.Request) model.Page {
	return model.Page{
		Number:  intQueryParam(r, "page", 1),
		PerPage: intQueryParam(r, "per_page", model.DefaultPerPage),
	}.Normalize()
}

// perPageFromRequest читает ограничение размера выборки для поиска.
func perPageFromRequest(r *http.Request) int {
	return model.ClampPerPage(intQueryParam(r, "per_page", model.DefaultPerPage))
}
