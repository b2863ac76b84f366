package model

import "time"

// Review is an entry in the public travel review feed.
type Review struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	AuthorName  string    `json:"author_name"`
	Destination string    `json:"destination"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}
