package models

import "time"

type Profile struct {
	ID             int64   `json:"-"`
	Username       string  `json:"username"`
	Email          string  `json:"-"`
	Bio            *string `json:"bio"`
	Image          *string `json:"image"`
	Following      bool    `json:"following"`
	FollowersCount int64   `json:"followersCount"`
}

type Article struct {
	ID             int64     `json:"-"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	AuthorID       int64     `json:"-"`
	Author         *Profile  `json:"author,omitempty"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	AuthorID  int64     `json:"-"`
	ArticleID int64     `json:"-"`
	Author    *Profile  `json:"author,omitempty"`
}

// Follow is a directed edge: FollowerID sees FollowingID's articles in their feed.
type Follow struct {
	FollowerID  int64
	FollowingID int64
}
