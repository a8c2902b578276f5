package models

// BuyerProfile holds the identifying and contact information attached to
// every order. The JSON field names follow the gateway contract; the YAML
// names are used by the local profile seed file.
type BuyerProfile struct {
	Name        string `json:"buyerName" yaml:"name"`
	Surname     string `json:"buyerSurname" yaml:"surname"`
	PhoneNumber string `json:"buyerPhoneNumber" yaml:"phoneNumber"`
	Email       string `json:"buyerEmail" yaml:"email"`
	Country     string `json:"buyerCountry" yaml:"country"`
	City        string `json:"buyerCity" yaml:"city"`
	ZipCode     string `json:"buyerZipCode" yaml:"zipCode"`
	Address     string `json:"buyerAddress" yaml:"address"`
}

// FullName returns "Name Surname", the key the order service filters
// order history by.
func (b BuyerProfile) FullName() string {
	return b.Name + " " + b.Surname
}
