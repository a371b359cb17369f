// Package handler содержит HTTP-обработчики API сервиса учёта посылок.
package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/parceltrack/parcel-tracker/internal/middleware"
	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error

	ListClients(ctx context.Context, page model.Page) ([]model.Client, int64, error)
	GetClient(ctx context.Context, clientID int64) (*model.Client, error)
	CreateClient(ctx context.Context, in model.ClientInput) (*model.Client, error)
	UpdateClient(ctx context.Context, clientID int64, upd model.ClientUpdate) (*model.Client, error)
	RegenerateClientToken(ctx context.Context, clientID int64) (*model.Client, error)
	SearchClients(ctx context.Context, q string, limit int) ([]model.Client, error)

	ListParcels(ctx context.Context, page model.Page) ([]model.Parcel, int64, error)
	GetParcel(ctx context.Context, parcelID int64) (*model.Parcel, error)
	ParcelsByClient(ctx context.Context, clientID int64) ([]model.Parcel, error)
	CreateParcel(ctx context.Context, in model.ParcelInput) (*model.Parcel, error)
	UpdateParcel(ctx context.Context, parcelID int64, upd model.ParcelUpdate) (*model.Parcel, error)

	ListReceivers(ctx context.Context, page model.Page) ([]model.Receiver, int64, error)
	GetReceiver(ctx context.Context, receiverID int64) (*model.Receiver, error)
	CreateReceiver(ctx context.Context, in model.ReceiverInput) (*model.Receiver, error)
	UpdateReceiver(ctx context.Context, receiverID int64, upd model.ReceiverUpdate) (*model.Receiver, error)
	SearchReceivers(ctx context.Context, q string, inn *int64, limit int) ([]model.Receiver, error)

	ListItems(ctx context.Context, page model.Page) ([]model.Item, int64, error)
	GetItem(ctx context.Context, itemID int64) (*model.Item, error)
	ItemsByParcel(ctx context.Context, parcelID int64) ([]model.Item, error)
	CreateItem(ctx context.Context, in model.ItemInput) (*model.Item, error)
	UpdateItem(ctx context.Context, itemID int64, upd model.ItemUpdate) (*model.Item, error)

	CourierStats(ctx context.Context) ([]model.CourierStat, error)
}

// Notifier отправляет текст уведомления во внешний чат.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Handler реализует HTTP-обработчики API сервиса учёта посылок.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
	notifier       Notifier
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware, notifier Notifier) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
		notifier:       notifier,
	}
}
