package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// stubService подменяет отдельные методы бизнес-логики в тестах.
// Неподменённые методы наследуются от встроенного интерфейса и не вызываются.
type stubService struct {
	Service

	loginFn         func(ctx context.Context, email, password string) (*model.User, string, error)
	listClientsFn   func(ctx context.Context, page model.Page) ([]model.Client, int64, error)
	getClientFn     func(ctx context.Context, clientID int64) (*model.Client, error)
	createClientFn  func(ctx context.Context, in model.ClientInput) (*model.Client, error)
	updateClientFn  func(ctx context.Context, clientID int64, upd model.ClientUpdate) (*model.Client, error)
	searchClientsFn func(ctx context.Context, q string, limit int) ([]model.Client, error)
	retokenFn       func(ctx context.Context, clientID int64) (*model.Client, error)
}

func (s *stubService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubService) ListClients(ctx context.Context, page model.Page) ([]model.Client, int64, error) {
	return s.listClientsFn(ctx, page)
}

func (s *stubService) GetClient(ctx context.Context, clientID int64) (*model.Client, error) {
	return s.getClientFn(ctx, clientID)
}

func (s *stubService) CreateClient(ctx context.Context, in model.ClientInput) (*model.Client, error) {
	return s.createClientFn(ctx, in)
}

func (s *stubService) UpdateClient(ctx context.Context, clientID int64, upd model.ClientUpdate) (*model.Client, error) {
	return s.updateClientFn(ctx, clientID, upd)
}

func (s *stubService) SearchClients(ctx context.Context, q string, limit int) ([]model.Client, error) {
	return s.searchClientsFn(ctx, q, limit)
}

func (s *stubService) RegenerateClientToken(ctx context.Context, clientID int64) (*model.Client, error) {
	return s.retokenFn(ctx, clientID)
}

type stubNotifier struct {
	sent []string
	err  error
}

func (n *stubNotifier) Send(_ context.Context, text string) error {
	n.sent = append(n.sent, text)
	return n.err
}

func newTestHandler(s Service, n Notifier) *Handler {
	return NewHandler(s, zap.NewNop(), nil, n)
}

// withURLParam добавляет к запросу параметр маршрута chi.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
