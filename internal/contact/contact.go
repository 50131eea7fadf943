package contact

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Status tracks where a contact is in the inbox workflow.
type Status string

const (
	StatusNew      Status = "novo"
	StatusRead     Status = "lido"
	StatusReplied  Status = "respondido"
	StatusArchived Status = "arquivado"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusNew, StatusRead, StatusReplied, StatusArchived}

// Contact is a message submitted through the site contact form.
type Contact struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Phone     string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string        `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string        `bson:"message" json:"message"`
	Status    Status        `bson:"status" json:"status"`
	IP        string        `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string        `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Filter selects a page of contacts, newest first.
type Filter struct {
	Status Status
	Page   int
	Limit  int
}

// Skip is the number of documents before the requested page.
func (f Filter) Skip() int64 {
	if f.Page <= 1 {
		return 0
	}
	return int64(f.Page-1) * int64(f.Limit)
}

// Page is one page of List results.
type Page struct {
	Items []Contact `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Pages int64     `json:"pages"`
}

func newPage(items []Contact, total int64, f Filter) Page {
	if items == nil {
		items = []Contact{}
	}
	var pages int64
	if f.Limit > 0 {
		pages = (total + int64(f.Limit) - 1) / int64(f.Limit)
	}
	return Page{Items: items, Total: total, Page: f.Page, Limit: f.Limit, Pages: pages}
}
