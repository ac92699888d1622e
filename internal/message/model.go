// File: internal/message/model.go
package message

import (
	"time"

	"slate_backend/internal/store"
)

// Message is one direct message about a post. Messages are append-only; the
// only mutation ever applied is flipping the read flag.
type Message struct {
	ID         string     `json:"id"`
	PostID     string     `json:"post_id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Content    string     `json:"content"`
	Read       bool       `json:"read"`
	CreatedAt  *time.Time `json:"created_at"`
}

func (m Message) toDocument() store.Document {
	return store.Document{
		"postId":     m.PostID,
		"senderId":   m.SenderID,
		"receiverId": m.ReceiverID,
		"content":    m.Content,
		"read":       m.Read,
		"createdAt":  store.ServerTimestamp,
	}
}

func fromDoc(d store.Doc) Message {
	return Message{
		ID:         d.ID,
		PostID:     d.Data.String("postId"),
		SenderID:   d.Data.String("senderId"),
		ReceiverID: d.Data.String("receiverId"),
		Content:    d.Data.String("content"),
		Read:       d.Data.Bool("read"),
		CreatedAt:  d.Data.Time("createdAt"),
	}
}

func messagesFromDocs(docs []store.Doc) []Message {
	messages := make([]Message, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, fromDoc(d))
	}
	return messages
}

// SendMessageRequest is the payload for sending a message about a post.
type SendMessageRequest struct {
	PostID     string `json:"post_id" binding:"required"`
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required,min=1"`
}
