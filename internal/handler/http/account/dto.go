// Package account provides the HTTP handlers for registration, login,
// logout, public profiles, the dashboard and the settings forms.
package account

import (
	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
)

// registerInput is the JSON body of the sign-up endpoint.
type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginInput is the JSON body of the sign-in endpoint.
type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// basicInfoInput is the JSON body of the basic-info settings endpoint.
// Empty email, username and profilePhoto leave the stored values unchanged.
type basicInfoInput struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Bio          string `json:"bio"`
	ProfilePhoto string `json:"profilePhoto"`
}

// passwordInput is the JSON body of the password settings endpoint.
type passwordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"password"`
}

// profileData is the payload of a public profile page.
type profileData struct {
	Name           string
	Username       string
	Bio            string
	PhotoURL       string
	BlogPublished  int64
	TotalVisits    int64
	TotalReactions int64
	Blogs          []render.BlogCard
	Window         pagination.Window
}

// dashboardData is the payload of the signed-in user's dashboard.
type dashboardData struct {
	BlogPublished  int64
	TotalVisits    int64
	TotalReactions int64
	Blogs          []dashboardRow
}

// dashboardRow is one owned blog with its engagement counters.
type dashboardRow struct {
	ID            int64
	Title         string
	Reaction      int64
	TotalBookmark int64
	TotalVisit    int64
}

// settingsData prefills the settings forms with the stored account fields.
type settingsData struct {
	Name     string
	Username string
	Email    string
	Bio      string
}
