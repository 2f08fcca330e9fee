package render

import "github.com/thedevarpan/dot-developer/internal/repository"

// BlogCard is the listing-card projection shared by the home feed, profile
// pages and the reading list.
type BlogCard struct {
	ID             int64
	Title          string
	BannerURL      string
	ReadingTime    int
	Reaction       int64
	AuthorName     string
	AuthorUsername string
	AuthorPhotoURL string
}

// BlogCards projects a repository listing into template cards.
func BlogCards(blogs []repository.BlogWithAuthor) []BlogCard {
	cards := make([]BlogCard, 0, len(blogs))
	for _, b := range blogs {
		cards = append(cards, BlogCard{
			ID:             b.Blog.ID,
			Title:          b.Blog.Title,
			BannerURL:      b.Blog.Banner.URL,
			ReadingTime:    b.Blog.ReadingTime,
			Reaction:       b.Blog.Reaction,
			AuthorName:     b.Author.Name,
			AuthorUsername: b.Author.Username,
			AuthorPhotoURL: b.Author.PhotoURL,
		})
	}
	return cards
}
