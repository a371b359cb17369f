package handler

import (
	"fmt"
	"net/mail"
	"net/url"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// fieldErrors накапливает сообщения валидации по полям запроса.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func (f fieldErrors) empty() bool {
	return len(f) == 0
}

func (f fieldErrors) required(field, value string) {
	if value == "" {
		f.add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

func (f fieldErrors) maxLen(field, value string, max int) {
	if len(value) > max {
		f.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, max))
	}
}

func (f fieldErrors) validURL(field, value string) {
	if value == "" {
		return
	}
	u, err := url.ParseRequestURI(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		f.add(field, fmt.Sprintf("The %s format is invalid.", field))
	}
}

func (f fieldErrors) validEmail(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f.add(field, fmt.Sprintf("The %s must be a valid email address.", field))
	}
}

func validateClientInput(in model.ClientInput) fieldErrors {
	errs := fieldErrors{}

	errs.required("name", in.Name)
	errs.maxLen("name", in.Name, 50)
	errs.required("contact", in.Contact)
	errs.maxLen("contact", in.Contact, 50)
	errs.required("country_code", in.CountryCode)
	errs.maxLen("country_code", in.CountryCode, 5)
	errs.required("address", in.Address)
	errs.maxLen("address", in.Address, 100)
	errs.required("url", in.URL)
	errs.maxLen("url", in.URL, 50)
	errs.validURL("url", in.URL)

	if in.Webhook != nil {
		errs.maxLen("webhook", *in.Webhook, 255)
		errs.validURL("webhook", *in.Webhook)
	}

	return errs
}

func validateClientUpdate(upd model.ClientUpdate) fieldErrors {
	errs := fieldErrors{}

	if upd.Name != nil {
		errs.required("name", *upd.Name)
		errs.maxLen("name", *upd.Name, 50)
	}
	if upd.Contact != nil {
		errs.required("contact", *upd.Contact)
		errs.maxLen("contact", *upd.Contact, 50)
	}
	if upd.CountryCode != nil {
		errs.required("country_code", *upd.CountryCode)
		errs.maxLen("country_code", *upd.CountryCode, 5)
	}
	if upd.Address != nil {
		errs.required("address", *upd.Address)
		errs.maxLen("address", *upd.Address, 100)
	}
	if upd.URL != nil {
		errs.required("url", *upd.URL)
		errs.maxLen("url", *upd.URL, 50)
		errs.validURL("url", *upd.URL)
	}
	if upd.Webhook != nil {
		errs.maxLen("webhook", *upd.Webhook, 255)
		errs.validURL("webhook", *upd.Webhook)
	}

	return errs
}

func validateParcelInput(in model.ParcelInput) fieldErrors {
	errs := fieldErrors{}

	errs.required("order_no", in.OrderNo)
	errs.maxLen("order_no", in.OrderNo, 50)
	if in.ClientID < 1 {
		errs.add("client_id", "The client_id field is required.")
	}
	if in.ReceiverID < 1 {
		errs.add("receiver_id", "The receiver_id field is required.")
	}
	errs.maxLen("current_status", in.CurrentStatus, 50)

	return errs
}

func validateParcelUpdate(upd model.ParcelUpdate) fieldErrors {
	errs := fieldErrors{}

	if upd.OrderNo != nil {
		errs.required("order_no", *upd.OrderNo)
		errs.maxLen("order_no", *upd.OrderNo, 50)
	}
	if upd.ReceiverID != nil && *upd.ReceiverID < 1 {
		errs.add("receiver_id", "The receiver_id field is required.")
	}
	if upd.CurrentStatus != nil {
		errs.maxLen("current_status", *upd.CurrentStatus, 50)
	}

	return errs
}

func validateReceiverInput(in model.ReceiverInput) fieldErrors {
	errs := fieldErrors{}

	errs.required("name", in.Name)
	errs.maxLen("name", in.Name, 255)
	errs.maxLen("phone_nums", in.PhoneNums, 255)
	errs.maxLen("passport_id", in.PassportID, 50)
	errs.validEmail("email", in.Email)

	return errs
}

func validateReceiverUpdate(upd model.ReceiverUpdate) fieldErrors {
	errs := fieldErrors{}

	if upd.Name != nil {
		errs.required("name", *upd.Name)
		errs.maxLen("name", *upd.Name, 255)
	}
	if upd.PhoneNums != nil {
		errs.maxLen("phone_nums", *upd.PhoneNums, 255)
	}
	if upd.PassportID != nil {
		errs.maxLen("passport_id", *upd.PassportID, 50)
	}
	if upd.Email != nil {
		errs.validEmail("email", *upd.Email)
	}

	return errs
}

func validateItemInput(in model.ItemInput) fieldErrors {
	errs := fieldErrors{}

	if in.ParcelID < 1 {
		errs.add("parcel_id", "The parcel_id field is required.")
	}
	if in.Quantity < 0 {
		errs.add("quantity", "The quantity must be at least 0.")
	}
	if in.Price < 0 {
		errs.add("price", "The price must be at least 0.")
	}
	errs.maxLen("tn_code", in.TnCode, 50)
	errs.maxLen("currency", in.Currency, 10)
	errs.validURL("url", in.URL)

	return errs
}

func validateItemUpdate(upd model.ItemUpdate) fieldErrors {
	errs := fieldErrors{}

	if upd.Quantity != nil && *upd.Quantity < 0 {
		errs.add("quantity", "The quantity must be at least 0.")
	}
	if upd.Price != nil && *upd.Price < 0 {
		errs.add("price", "The price must be at least 0.")
	}
	if upd.TnCode != nil {
		errs.maxLen("tn_code", *upd.TnCode, 50)
	}
	if upd.Currency != nil {
		errs.maxLen("currency", *upd.Currency, 10)
	}
	if upd.URL != nil {
		errs.validURL("url", *upd.URL)
	}

	return errs
}
