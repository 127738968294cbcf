package domain

// Stock is the purchasable amount of a product at query time.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}
