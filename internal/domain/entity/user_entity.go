package entity

// User owns zero or more posts.
// Password is stored exactly as submitted and must never be serialized.
type User struct {
	ID       int64
	Email    string
	Password string
	IsActive bool
}
