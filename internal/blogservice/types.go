package blogservice

import (
	"database/sql"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sushihentaime/blogapi/internal/common"
)

type Blog struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Author   string  `json:"author"`
	Content  string  `json:"content"`
	Image    *string `json:"image,omitempty"`
	// UserID and Email identify the owner. Neither is checked against the users table.
	UserID    string    `json:"userid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateBlogRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Author   string  `json:"author"`
	Content  string  `json:"content"`
	Image    *string `json:"image"`
	UserID   string  `json:"userid"`
	Email    string  `json:"email"`
}

// UpdateBlogRequest overwrites every non-nil field.
type UpdateBlogRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Image    *string `json:"image"`
	Category *string `json:"category"`
	Author   *string `json:"author"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache

	// gen counts writes. mu orders cache fills against invalidation.
	mu  sync.Mutex
	gen atomic.Uint64
}
