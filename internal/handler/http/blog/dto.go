// Package blog provides the HTTP handlers for the blog pages: the home feed,
// blog detail, authoring (create, edit, delete) and the visit counter.
package blog

import (
	"html/template"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
)

// feedData is the payload of the home feed page.
type feedData struct {
	Blogs  []render.BlogCard
	Window pagination.Window
}

// detailData is the payload of the blog detail page. Body is the blog
// content already converted from markdown.
type detailData struct {
	ID             int64
	Title          string
	Body           template.HTML
	BannerURL      string
	ReadingTime    int
	Reaction       int64
	TotalVisit     int64
	AuthorName     string
	AuthorUsername string
	AuthorPhotoURL string
	ViewerOwns     bool
	ViewerReacted  bool
	ViewerSaved    bool
	OwnerBlogs     []render.BlogCard
}

// editData is the payload of the edit form, prefilled with the stored post.
type editData struct {
	ID        int64
	Title     string
	Content   string
	BannerURL string
}

// postInput is the JSON body of the create and update endpoints. Banner is a
// base64 data string; empty on update keeps the current banner.
type postInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Banner  string `json:"banner"`
}
