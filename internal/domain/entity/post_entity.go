package entity

import "time"

// ContentMaxLen is the width of posts.content.
const ContentMaxLen = 120

// Post belongs to exactly one user through UserID.
type Post struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	UserID    int64
}
