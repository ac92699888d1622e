// File: internal/post/model.go
package post

import (
	"fmt"
	"time"

	"slate_backend/internal/store"
)

// Category classifies a post. "all" is a filter sentinel only; stored posts
// always carry one of the four concrete categories, immutable after creation.
type Category string

const (
	CategoryAll     Category = "all"
	CategorySale    Category = "sale"
	CategoryEvent   Category = "event"
	CategoryService Category = "service"
	CategoryJob     Category = "job"
)

// Author is the denormalized snapshot of the posting user embedded in each
// post. It is captured at creation time and never refreshed: later profile
// edits do not retroactively update past posts.
type Author struct {
	Name        string  `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Anonymous is the fixed placeholder author used when a post is created
// without an authenticated identity.
var Anonymous = Author{
	Name:        "Anonymous",
	AvatarURL:   "https://picsum.photos/seed/anonymous/100/100",
	PhoneNumber: strPtr("+15550001111"),
}

func strPtr(s string) *string { return &s }

// Post is a classifieds listing. Which optional fields are meaningful is
// determined by the category (price for sale/job, eventDate for event), but
// the model does not enforce that beyond creation-time guidance.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls"`
	Author      Author    `json:"author"`
	Category    Category  `json:"category"`
	Price       *string   `json:"price"`
	Location    *string   `json:"location"`
	EventDate   *string   `json:"event_date"`
	Tags        []string  `json:"tags"`
	Slug        string    `json:"slug"`
	CreatedAt   *time.Time `json:"created_at"`
}

// ShareURL builds the public link for this post.
func (p Post) ShareURL(baseURL string) string {
	return fmt.Sprintf("%s/p/%s/%s", baseURL, p.Slug, p.ID)
}

// --- Wire mapping. Stored field names are the application's document format
// (camelCase); the embedded author snapshot lives under "user".

func authorToDocument(a Author) store.Document {
	doc := store.Document{
		"name":      a.Name,
		"avatarUrl": a.AvatarURL,
	}
	if a.PhoneNumber != nil {
		doc["phoneNumber"] = *a.PhoneNumber
	}
	return doc
}

func authorFromDocument(d store.Document) Author {
	return Author{
		Name:        d.String("name"),
		AvatarURL:   d.String("avatarUrl"),
		PhoneNumber: d.StringPtr("phoneNumber"),
	}
}

func (p Post) toDocument() store.Document {
	doc := store.Document{
		"title":       p.Title,
		"description": p.Description,
		"imageUrls":   p.ImageURLs,
		"user":        authorToDocument(p.Author),
		"category":    string(p.Category),
		"slug":        p.Slug,
		"createdAt":   store.ServerTimestamp,
	}
	if p.Price != nil {
		doc["price"] = *p.Price
	}
	if p.Location != nil {
		doc["location"] = *p.Location
	}
	if p.EventDate != nil {
		doc["eventDate"] = *p.EventDate
	}
	if len(p.Tags) > 0 {
		doc["tags"] = p.Tags
	}
	return doc
}

func fromDoc(d store.Doc) Post {
	data := d.Data
	imageURLs := data.Strings("imageUrls")
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return Post{
		ID:          d.ID,
		Title:       data.String("title"),
		Description: data.String("description"),
		ImageURLs:   imageURLs,
		Author:      authorFromDocument(data.Sub("user")),
		Category:    Category(data.String("category")),
		Price:       data.StringPtr("price"),
		Location:    data.StringPtr("location"),
		EventDate:   data.StringPtr("eventDate"),
		Tags:        data.Strings("tags"),
		Slug:        data.String("slug"),
		CreatedAt:   data.Time("createdAt"),
	}
}

func postsFromDocs(docs []store.Doc) []Post {
	posts := make([]Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, fromDoc(d))
	}
	return posts
}

// CreatePostRequest is the payload for creating a post. The author is never
// client-supplied; it is attributed server-side from the acting identity.
type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"required"`
	ImageURLs   []string `json:"image_urls" binding:"required,min=1,dive,url"`
	Category    Category `json:"category" binding:"required,oneof=sale event service job"`
	Price       *string  `json:"price"`
	Location    *string  `json:"location"`
	EventDate   *string  `json:"event_date"`
	Tags        []string `json:"tags"`
}
