// File: internal/post/seed.go
package post

// seedPosts is the fixed sample content installed by the seed operation.
// Posts are written one at a time in this order, so with server-assigned
// creation timestamps the last entry ends up newest in the feed.
func seedPosts() []Post {
	return []Post{
		{
			Title:       "Vintage Leather Jacket",
			Description: "A classic biker-style leather jacket from the 80s. Well-preserved with a beautiful patina. Minor wear on the cuffs, but otherwise in excellent condition. Size is Men's Medium.",
			ImageURLs:   []string{"https://picsum.photos/seed/jacket/600/800", "https://picsum.photos/seed/jacket2/600/800", "https://picsum.photos/seed/jacket3/600/800"},
			Author:      Author{Name: "Alex Johnson", AvatarURL: "https://picsum.photos/seed/alex/100/100", PhoneNumber: strPtr("+15551234567")},
			Category:    CategorySale,
			Price:       strPtr("$75"),
			Location:    strPtr("Downtown"),
			Tags:        []string{"fashion", "vintage", "80s", "leather"},
		},
		{
			Title:       "Community Farmers Market",
			Description: "Join us every Saturday for fresh, locally-grown produce, handmade crafts, and live music. A perfect weekend outing for the whole family. Free entry!",
			ImageURLs:   []string{"https://picsum.photos/seed/market/600/800", "https://picsum.photos/seed/market2/600/800"},
			Author:      Author{Name: "Maria Garcia", AvatarURL: "https://picsum.photos/seed/maria/100/100", PhoneNumber: strPtr("+15552345678")},
			Category:    CategoryEvent,
			EventDate:   strPtr("Sat, Oct 26"),
			Location:    strPtr("Central Park"),
			Tags:        []string{"community", "food", "family-friendly", "outdoors"},
		},
		{
			Title:       "Weekend Dog Walking",
			Description: "Experienced and reliable dog walker available for weekend walks. I love all breeds and sizes. Your furry friend will be in safe hands for a fun-filled hour of exercise and play.",
			ImageURLs:   []string{"https://picsum.photos/seed/dogs/600/800", "https://picsum.photos/seed/dogwalk/600/800", "https://picsum.photos/seed/dogpark/600/800"},
			Author:      Author{Name: "Chen Wei", AvatarURL: "https://picsum.photos/seed/chen/100/100", PhoneNumber: strPtr("+15553456789")},
			Category:    CategoryService,
			Location:    strPtr("Neighborhood-wide"),
			Tags:        []string{"pets", "services", "animals"},
		},
		{
			Title:       "Senior Frontend Engineer",
			Description: "Join our dynamic team to build next-gen web applications. Proficient in React, TypeScript, and modern CSS. 5+ years of experience required. Competitive salary and benefits.",
			ImageURLs:   []string{"https://picsum.photos/seed/devjob/600/800", "https://picsum.photos/seed/office/600/800"},
			Author:      Author{Name: "Innovate Tech Inc.", AvatarURL: "https://picsum.photos/seed/innovate/100/100", PhoneNumber: strPtr("+15553001001")},
			Category:    CategoryJob,
			Price:       strPtr("$120,000 - $150,000/year"),
			Location:    strPtr("Remote / Downtown Office"),
			Tags:        []string{"tech", "engineering", "react", "remote"},
		},
	}
}
