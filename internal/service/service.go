// Package service реализует бизнес-логику сервиса учёта посылок.
package service

import (
	"context"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	ListClients(ctx context.Context, page model.Page) ([]model.Client, int64, error)
	GetClient(ctx context.Context, clientID int64) (*model.Client, error)
	MaxClientID(ctx context.Context) (int64, bool, error)
	CreateClient(ctx context.Context, clientID int64, in model.ClientInput, token string) (*model.Client, error)
	UpdateClient(ctx context.Context, clientID int64, upd model.ClientUpdate) (*model.Client, error)
	UpdateClientToken(ctx context.Context, clientID int64, token string) (*model.Client, error)
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

	CreateUser(ctx context.Context, name, email string, passwordHash []byte, userType, legacyToken, sessionTokenHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateAuthToken(ctx context.Context, userID int64, tokenHash string) error
	DeleteAuthToken(ctx context.Context, tokenHash string) error
	GetUserByTokenHash(ctx context.Context, tokenHash string) (*model.User, error)

	CourierStats(ctx context.Context) ([]model.CourierStat, error)
}

// Service содержит бизнес-логику сервиса учёта посылок.
type Service struct {
	repo Repository
}

// NewService создаёт новый сервис с указанным репозиторием.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// ListClients возвращает страницу клиентов и их общее количество.
func (s *Service) ListClients(ctx context.Context, page model.Page) ([]model.Client, int64, error) {
	return s.repo.ListClients(ctx, page.Normalize())
}

// GetClient возвращает клиента по идентификатору.
func (s *Service) GetClient(ctx context.Context, clientID int64) (*model.Client, error) {
	return s.repo.GetClient(ctx, clientID)
}

// UpdateClient выполняет частичное обновление клиента.
func (s *Service) UpdateClient(ctx context.Context, clientID int64, upd model.ClientUpdate) (*model.Client, error) {
	return s.repo.UpdateClient(ctx, clientID, upd)
}

// SearchClients ищет клиентов по текстовым полям и идентификатору.
func (s *Service) SearchClients(ctx context.Context, q string, limit int) ([]model.Client, error) {
	return s.repo.SearchClients(ctx, q, model.ClampPerPage(limit))
}

// ListParcels возвращает страницу отправлений.
func (s *Service) ListParcels(ctx context.Context, page model.Page) ([]model.Parcel, int64, error) {
	return s.repo.ListParcels(ctx, page.Normalize())
}

// GetParcel возвращает отправление по идентификатору.
func (s *Service) GetParcel(ctx context.Context, parcelID int64) (*model.Parcel, error) {
	return s.repo.GetParcel(ctx, parcelID)
}

// ParcelsByClient возвращает отправления клиента.
func (s *Service) ParcelsByClient(ctx context.Context, clientID int64) ([]model.Parcel, error) {
	return s.repo.ParcelsByClient(ctx, clientID)
}

// CreateParcel создаёт новое отправление.
func (s *Service) CreateParcel(ctx context.Context, in model.ParcelInput) (*model.Parcel, error) {
	return s.repo.CreateParcel(ctx, in)
}

// UpdateParcel выполняет частичное обновление отправления.
func (s *Service) UpdateParcel(ctx context.Context, parcelID int64, upd model.ParcelUpdate) (*model.Parcel, error) {
	return s.repo.UpdateParcel(ctx, parcelID, upd)
}

// ListReceivers возвращает страницу получателей.
func (s *Service) ListReceivers(ctx context.Context, page model.Page) ([]model.Receiver, int64, error) {
	return s.repo.ListReceivers(ctx, page.Normalize())
}

// GetReceiver возвращает получателя с его отправлениями.
func (s *Service) GetReceiver(ctx context.Context, receiverID int64) (*model.Receiver, error) {
	return s.repo.GetReceiver(ctx, receiverID)
}

// CreateReceiver создаёт нового получателя.
func (s *Service) CreateReceiver(ctx context.Context, in model.ReceiverInput) (*model.Receiver, error) {
	return s.repo.CreateReceiver(ctx, in)
}

// UpdateReceiver выполняет частичное обновление получателя.
func (s *Service) UpdateReceiver(ctx context.Context, receiverID int64, upd model.ReceiverUpdate) (*model.Receiver, error) {
	return s.repo.UpdateReceiver(ctx, receiverID, upd)
}

// SearchReceivers ищет получателей по текстовым полям и ИНН.
func (s *Service) SearchReceivers(ctx context.Context, q string, inn *int64, limit int) ([]model.Receiver, error) {
	return s.repo.SearchReceivers(ctx, q, inn, model.ClampPerPage(limit))
}

// ListItems возвращает страницу товарных позиций.
func (s *Service) ListItems(ctx context.Context, page model.Page) ([]model.Item, int64, error) {
	return s.repo.ListItems(ctx, page.Normalize())
}

// GetItem возвращает товарную позицию по идентификатору.
func (s *Service) GetItem(ctx context.Context, itemID int64) (*model.Item, error) {
	return s.repo.GetItem(ctx, itemID)
}

// ItemsByParcel возвращает позиции указанного отправления.
func (s *Service) ItemsByParcel(ctx context.Context, parcelID int64) ([]model.Item, error) {
	return s.repo.ItemsByParcel(ctx, parcelID)
}

// CreateItem создаёт новую товарную позицию.
func (s *Service) CreateItem(ctx context.Context, in model.ItemInput) (*model.Item, error) {
	return s.repo.CreateItem(ctx, in)
}

// UpdateItem выполняет частичное обновление товарной позиции.
func (s *Service) UpdateItem(ctx context.Context, itemID int64, upd model.ItemUpdate) (*model.Item, error) {
	return s.repo.UpdateItem(ctx, itemID, upd)
}

// CourierStats возвращает статистику доставок курьерской службы.
func (s *Service) CourierStats(ctx context.Context) ([]model.CourierStat, error) {
	return s.repo.CourierStats(ctx)
}
