package domain

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar_url,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session is the bearer token plus the user it was issued for. Its absence is
// valid application state (anonymous browsing).
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Address struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

type PaymentMethod struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // "card", "cod", ...
	CardBrand string `json:"card_brand,omitempty"`
	Last4     string `json:"last4,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// Profile is the /api/profile aggregate: user fields plus saved addresses and
// payment methods.
type Profile struct {
	User
	Addresses      []Address       `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}
