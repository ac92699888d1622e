// File: internal/offer/model.go
package offer

import (
	"time"

	"slate_backend/internal/store"
)

// Status tracks an offer through its negotiation lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCountered Status = "countered"
)

// Offer is a buyer's bid on a post. The buyer creates it pending; the
// response path either settles it (accepted/rejected) or counters it.
type Offer struct {
	ID           string     `json:"id"`
	PostID       string     `json:"post_id"`
	BuyerID      string     `json:"buyer_id"`
	SellerID     string     `json:"seller_id"`
	Amount       string     `json:"amount"`
	Message      string     `json:"message"`
	Status       Status     `json:"status"`
	CounterOffer *string    `json:"counter_offer"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (o Offer) toDocument() store.Document {
	return store.Document{
		"postId":    o.PostID,
		"buyerId":   o.BuyerID,
		"sellerId":  o.SellerID,
		"amount":    o.Amount,
		"message":   o.Message,
		"status":    string(o.Status),
		"createdAt": store.ServerTimestamp,
		"updatedAt": store.ServerTimestamp,
	}
}

func fromDoc(d store.Doc) Offer {
	return Offer{
		ID:           d.ID,
		PostID:       d.Data.String("postId"),
		BuyerID:      d.Data.String("buyerId"),
		SellerID:     d.Data.String("sellerId"),
		Amount:       d.Data.String("amount"),
		Message:      d.Data.String("message"),
		Status:       Status(d.Data.String("status")),
		CounterOffer: d.Data.StringPtr("counterOffer"),
		CreatedAt:    d.Data.Time("createdAt"),
		UpdatedAt:    d.Data.Time("updatedAt"),
	}
}

func offersFromDocs(docs []store.Doc) []Offer {
	offers := make([]Offer, 0, len(docs))
	for _, d := range docs {
		offers = append(offers, fromDoc(d))
	}
	return offers
}

// MakeOfferRequest is the payload for bidding on a post.
type MakeOfferRequest struct {
	PostID   string `json:"post_id" binding:"required"`
	SellerID string `json:"seller_id" binding:"required"`
	Amount   string `json:"amount" binding:"required,min=1"`
	Message  string `json:"message"`
}

// RespondToOfferRequest is the payload for settling or countering an offer.
type RespondToOfferRequest struct {
	Status       Status  `json:"status" binding:"required,oneof=accepted rejected"`
	CounterOffer *string `json:"counter_offer"`
}
