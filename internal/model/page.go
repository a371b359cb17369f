package model

import "fmt"

// Ограничения постраничной выборки.
const (
	DefaultPerPage = 20
	MinPerPage     = 1
	MaxPerPage     = 100
)

// Page описывает запрошенную страницу выборки.
type Page struct {
	Number  int
	PerPage int
}

// ClampPerPage приводит размер страницы к допустимому диапазону [1, 100].
func ClampPerPage(perPage int) int {
	if perPage < MinPerPage {
		return MinPerPage
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// Normalize возвращает страницу с номером не меньше 1 и размером в допустимом диапазоне.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	p.PerPage = ClampPerPage(p.PerPage)
	return p
}

// Offset возвращает смещение первой записи страницы.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Pagination описывает блок пагинации в JSON-ответе.
type Pagination struct {
	CurrentPage int     `json:"current_page"`
	PerPage     int     `json:"per_page"`
	Total       int64   `json:"total"`
	LastPage    int     `json:"last_page"`
	From        int     `json:"from"`
	To          int     `json:"to"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
}

// NewPagination строит блок пагинации для страницы page при общем количестве total.
// basePath используется для ссылок на соседние страницы.
func NewPagination(page Page, total int64, basePath string) Pagination {
	lastPage := int((total + int64(page.PerPage) - 1) / int64(page.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if total > 0 && page.Offset() < int(total) {
		from = page.Offset() + 1
		to = page.Offset() + page.PerPage
		if int64(to) > total {
			to = int(total)
		}
	}

	pg := Pagination{
		CurrentPage: page.Number,
		PerPage:     page.PerPage,
		Total:       total,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}

	if page.Number < lastPage {
		u := pageURL(basePath, page.Number+1, page.PerPage)
		pg.NextPageURL = &u
	}
	if page.Number > 1 {
		u := pageURL(basePath, page.Number-1, page.PerPage)
		pg.PrevPageURL = &u
	}

	return pg
}

func pageURL(basePath string, number, perPage int) string {
	return fmt.Sprintf("%s?page=%d&per_page=%d", basePath, number, perPage)
}
