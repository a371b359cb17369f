// Package model содержит доменные сущности сервиса учёта посылок.
package model

import "time"

// User представляет учётную запись сотрудника, работающего с API.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Type         string    `json:"type"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Типы учётных записей пользователей.
const (
	UserTypeAdmin = "admin"
	UserTypeUser  = "user"
)

// Client представляет компанию-отправителя, подключённую к API по токену.
type Client struct {
	ClientID    int64   `json:"client_id"`
	Name        string  `json:"name"`
	Contact     string  `json:"contact"`
	CountryCode string  `json:"country_code"`
	Address     string  `json:"address"`
	URL         string  `json:"url"`
	Webhook     *string `json:"webhook"`
	Token       string  `json:"token"`
}

// ClientInput содержит поля для создания нового клиента.
// Идентификатор и токен назначаются сервером.
type ClientInput struct {
	Name        string  `json:"name"`
	Contact     string  `json:"contact"`
	CountryCode string  `json:"country_code"`
	Address     string  `json:"address"`
	URL         string  `json:"url"`
	Webhook     *string `json:"webhook"`
}

// ClientUpdate содержит частичное обновление клиента: nil-поля не меняются.
type ClientUpdate struct {
	Name        *string `json:"name"`
	Contact     *string `json:"contact"`
	CountryCode *string `json:"country_code"`
	Address     *string `json:"address"`
	URL         *string `json:"url"`
	Webhook     *string `json:"webhook"`
}

// Receiver представляет получателя посылок.
type Receiver struct {
	ReceiverID int64    `json:"receiver_id"`
	Name       string   `json:"name"`
	PhoneNums  string   `json:"phone_nums"`
	Email      string   `json:"email"`
	PassportID string   `json:"passport_id"`
	INN        *int64   `json:"inn"`
	BirthDate  *Date    `json:"birth_date"`
	Parcels    []Parcel `json:"parcels,omitempty"`
}

// ReceiverInput содержит поля для создания получателя.
type ReceiverInput struct {
	Name       string `json:"name"`
	PhoneNums  string `json:"phone_nums"`
	Email      string `json:"email"`
	PassportID string `json:"passport_id"`
	INN        *int64 `json:"inn"`
	BirthDate  *Date  `json:"birth_date"`
}

// ReceiverUpdate содержит частичное обновление получателя.
type ReceiverUpdate struct {
	Name       *string `json:"name"`
	PhoneNums  *string `json:"phone_nums"`
	Email      *string `json:"email"`
	PassportID *string `json:"passport_id"`
	INN        *int64  `json:"inn"`
	BirthDate  *Date   `json:"birth_date"`
}

// Parcel представляет отправление, связывающее клиента, получателя и вложения.
type Parcel struct {
	ParcelID      int64     `json:"parcel_id"`
	OrderNo       string    `json:"order_no"`
	ClientID      int64     `json:"client_id"`
	ReceiverID    int64     `json:"receiver_id"`
	CurrentStatus string    `json:"current_status"`
	Items         []Item    `json:"items,omitempty"`
	Client        *Client   `json:"client,omitempty"`
	Receiver      *Receiver `json:"receiver,omitempty"`
}

// ParcelInput содержит поля для создания отправления.
type ParcelInput struct {
	OrderNo       string `json:"order_no"`
	ClientID      int64  `json:"client_id"`
	ReceiverID    int64  `json:"receiver_id"`
	CurrentStatus string `json:"current_status"`
}

// ParcelUpdate содержит частичное обновление отправления.
type ParcelUpdate struct {
	OrderNo       *string `json:"order_no"`
	ReceiverID    *int64  `json:"receiver_id"`
	CurrentStatus *string `json:"current_status"`
}

// Item представляет товарную позицию внутри отправления.
type Item struct {
	ID          int64   `json:"id"`
	ParcelID    int64   `json:"parcel_id"`
	TnCode      string  `json:"tn_code"`
	TnPosition  string  `json:"tn_position"`
	MeasureCode string  `json:"measure_code"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Model       string  `json:"model"`
	IMEI1       string  `json:"imei1"`
	IMEI2       string  `json:"imei2"`
	URL         string  `json:"url"`
	Parcel      *Parcel `json:"parcel,omitempty"`
}

// ItemInput содержит поля для создания товарной позиции.
type ItemInput struct {
	ParcelID    int64   `json:"parcel_id"`
	TnCode      string  `json:"tn_code"`
	TnPosition  string  `json:"tn_position"`
	MeasureCode string  `json:"measure_code"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Model       string  `json:"model"`
	IMEI1       string  `json:"imei1"`
	IMEI2       string  `json:"imei2"`
	URL         string  `json:"url"`
}

// ItemUpdate содержит частичное обновление товарной позиции.
type ItemUpdate struct {
	TnCode      *string  `json:"tn_code"`
	TnPosition  *string  `json:"tn_position"`
	MeasureCode *string  `json:"measure_code"`
	Quantity    *int64   `json:"quantity"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	Model       *string  `json:"model"`
	IMEI1       *string  `json:"imei1"`
	IMEI2       *string  `json:"imei2"`
	URL         *string  `json:"url"`
}

// CourierStat содержит агрегаты доставок курьерской службы за один период.
type CourierStat struct {
	Period            string  `json:"period"`
	DeliveredCount    int64   `json:"delivered_count"`
	ReturnCount       int64   `json:"return_count"`
	TotalPrice        float64 `json:"total_price"`
	AvgPriceDelivered float64 `json:"avg_price_delivered"`
	AvgPriceReturned  float64 `json:"avg_price_returned"`
}
