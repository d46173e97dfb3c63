// Package api holds the JSON shapes served over HTTP and Connect.
package api

import "time"

type Beer struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Version     int                `json:"version"`
	Description string             `json:"description,omitempty"`
	ReviewCount int                `json:"review_count"`
	Score       float64            `json:"score"`
	Sensory     map[string]float64 `json:"sensory"`
	CreatedAt   time.Time          `json:"created_at"`
}

type BeerVersion struct {
	ID        uint      `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

type BeerDetails struct {
	Beer
	Current  bool          `json:"current"`
	Versions []BeerVersion `json:"versions"`
	Reviews  []Review      `json:"reviews"`
	Comments []Comment     `json:"comments"`
}

type BeerList struct {
	Sort  string `json:"sort"`
	Beers []Beer `json:"beers"`
}

type Author struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Review struct {
	ID        uint            `json:"id"`
	BeerID    uint            `json:"beer_id"`
	Author    Author          `json:"author"`
	Ratings   map[string]*int `json:"ratings"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Comment struct {
	ID        uint      `json:"id"`
	BeerID    uint      `json:"beer_id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID        uint      `json:"id"`
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Candidate struct {
	Name           string   `json:"name"`
	Type           string   `json:"type,omitempty"`
	Description    string   `json:"description,omitempty"`
	Brewery        string   `json:"brewery,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	ABV            *float64 `json:"abv,omitempty"`
	IBU            *uint64  `json:"ibu,omitempty"`
	ExternalID     *uint64  `json:"external_id,omitempty"`
	ExternalSource *string  `json:"external_source,omitempty"`
	ExternalRating *float64 `json:"external_rating,omitempty"`
}

type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RoleChange struct {
	Role string `json:"role"`
}

type PasswordForgotten struct {
	Email string `json:"email"`
}

type ListBeersRequest struct {
	Sort  string `json:"sort"`
	Type  string `json:"type"`
	Query string `json:"q"`
}

type GetBeerRequest struct {
	ID uint `json:"id"`
}

type ListReviewsRequest struct {
	BeerID uint `json:"beer_id"`
}

type ListReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}
