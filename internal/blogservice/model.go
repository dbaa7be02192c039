package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sushihentaime/blogapi/internal/common"
)

var ErrRecordNotFound = common.ErrRecordNotFound

const blogColumns = `id, title, category, author, content, image, userid, email, created_at, updated_at`

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner, blog *Blog) error {
	return row.Scan(&blog.ID, &blog.Title, &blog.Category, &blog.Author, &blog.Content, &blog.Image, &blog.UserID, &blog.Email, &blog.CreatedAt, &blog.UpdatedAt)
}

func (m *BlogModel) insert(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	query := `
		INSERT INTO blogs (title, category, author, content, image, userid, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + blogColumns

	args := []any{req.Title, req.Category, req.Author, req.Content, req.Image, req.UserID, req.Email}

	var blog Blog
	if err := scanBlog(m.db.QueryRowContext(ctx, query, args...), &blog); err != nil {
		return nil, err
	}

	return &blog, nil
}

func (m *BlogModel) getBlogById(ctx context.Context, id string) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE id = $1`

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// updateBlog keeps the stored value of every nil field. Concurrent updates are last-write-wins.
func (m *BlogModel) updateBlog(ctx context.Context, id string, req *UpdateBlogRequest) (*Blog, error) {
	query := `
		UPDATE blogs
		SET title = COALESCE($1, title),
			content = COALESCE($2, content),
			image = COALESCE($3, image),
			category = COALESCE($4, category),
			author = COALESCE($5, author)
		WHERE id = $6
		RETURNING ` + blogColumns

	args := []any{req.Title, req.Content, req.Image, req.Category, req.Author, id}

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, args...), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id string) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) queryBlogs(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := make([]Blog, 0)
	for rows.Next() {
		var blog Blog
		if err := scanBlog(rows, &blog); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// getBlogs returns every blog, newest first.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		ORDER BY created_at DESC`

	return m.queryBlogs(ctx, query)
}

func (m *BlogModel) getBlogsByEmail(ctx context.Context, email string) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE email = $1
		ORDER BY created_at DESC`

	return m.queryBlogs(ctx, query, email)
}

// searchBlogs matches term as a case-insensitive substring of category or author.
func (m *BlogModel) searchBlogs(ctx context.Context, term string) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE category ILIKE $1 ESCAPE '\' OR author ILIKE $1 ESCAPE '\'
		ORDER BY created_at DESC`

	return m.queryBlogs(ctx, query, "%"+escapeLike(term)+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
