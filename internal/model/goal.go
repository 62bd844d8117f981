package model

// Goal is a monthly objective. It is filed under the month of CreatedAt.
type Goal struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"` // RFC 3339
}
