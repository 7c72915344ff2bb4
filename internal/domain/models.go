package domain

import (
	"strings"
	"time"
)

// Shapes mirror the sport-reservation API payloads. Everything here is
// owned by the remote API; the frontend never persists any of it.

// ID is an opaque identifier. The API serves numeric ids, but the client
// only threads them through URLs and request bodies, so they are held as
// strings and decoded from either JSON form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*id = ID(s)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if s != "" && strings.Trim(s, "0123456789") == "" {
		return []byte(s), nil
	}
	return []byte(`"` + s + `"`), nil
}

func (id ID) String() string { return string(id) }

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SportCategory struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type Province struct {
	ProvinceName string `json:"province_name"`
}

type City struct {
	CityNameFull string   `json:"city_name_full"`
	Province     Province `json:"province"`
}

type Participant struct {
	ID   ID   `json:"id"`
	User User `json:"user"`
	// Pending marks a locally recorded join that the server participant
	// list has not confirmed yet. Never set on API payloads.
	Pending bool `json:"-"`
}

type Activity struct {
	ID            ID             `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Address       string         `json:"address"`
	City          *City          `json:"city"`
	Price         int64          `json:"price"`
	PriceDiscount int64          `json:"price_discount"`
	Slot          int            `json:"slot"`
	ActivityDate  string         `json:"activity_date"` // YYYY-MM-DD
	StartTime     string         `json:"start_time"`
	EndTime       string         `json:"end_time"`
	Organizer     *User          `json:"organizer"`
	SportCategory *SportCategory `json:"sport_category"`
	Participants  []Participant  `json:"participants"`
	ImageURL      string         `json:"image_url"`
	MapURL        string         `json:"map_url"`
}

// IsFull reports whether every slot is taken.
func (a Activity) IsFull() bool {
	return len(a.Participants) >= a.Slot
}

// IsPast compares activity_date against now on calendar date only;
// start_time is not considered.
func (a Activity) IsPast(now time.Time) bool {
	d, err := time.Parse("2006-01-02", a.ActivityDate)
	if err != nil {
		return false
	}
	y, m, dd := now.Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}

// FullAddress joins street, city and province the way the detail page
// displays it.
func (a Activity) FullAddress() string {
	s := a.Address
	if a.City != nil {
		s += ", " + a.City.CityNameFull
		if a.City.Province.ProvinceName != "" {
			s += ", " + a.City.Province.ProvinceName
		}
	}
	return s
}

type PaymentMethod struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

const (
	TxPending   = "pending"
	TxSuccess   = "success"
	TxFailed    = "failed"
	TxCancelled = "cancelled"
)

type TransactionItems struct {
	SportActivities *Activity `json:"sport_activities"`
}

type Transaction struct {
	ID               ID               `json:"id"`
	InvoiceID        string           `json:"invoice_id"`
	Status           string           `json:"status"`
	TotalAmount      int64            `json:"total_amount"`
	OrderDate        string           `json:"order_date"`
	ExpiredDate      string           `json:"expired_date"`
	TransactionItems TransactionItems `json:"transaction_items"`
}

// Cancellable reports whether the user may still cancel. Only pending
// transactions qualify; everything else is settled server-side.
func (t Transaction) Cancellable() bool {
	return t.Status == TxPending
}

// AwaitingProof reports whether the confirmation page should offer the
// proof-of-payment upload.
func (t Transaction) AwaitingProof() bool {
	return t.Status != TxSuccess && t.Status != TxCancelled
}

// Page carries the server-reported pagination window. The server is
// authoritative: handlers overwrite their requested page with CurrentPage.
type Page struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

func (p Page) HasPrev() bool { return p.CurrentPage > 1 }
func (p Page) HasNext() bool { return p.CurrentPage < p.LastPage }
