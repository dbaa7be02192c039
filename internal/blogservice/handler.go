package blogservice

import (
	"context"
	"database/sql"
	"slices"

	"github.com/sushihentaime/blogapi/internal/common"
)

// NewBlogService wires the blog accessor. A nil cache disables caching of the blog list.
func NewBlogService(db *sql.DB, cache *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: cache}
}

// CreateBlog stores a new blog post. Every field except image must be provided.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateRequired(v, req.Title, "title")
	validateRequired(v, req.Category, "category")
	validateRequired(v, req.Author, "author")
	validateRequired(v, req.Content, "content")
	validateRequired(v, req.UserID, "userid")
	validateRequired(v, req.Email, "email")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.insert(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate()

	return blog, nil
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	return s.m.getBlogById(ctx, id)
}

// GetBlogs returns all blog posts, newest first.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyBlogs); ok {
			return slices.Clone(cached.([]Blog)), nil
		}
	}

	gen := s.gen.Load()

	blogs, err := s.m.getBlogs(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheBlogs(gen, blogs)

	return blogs, nil
}

// cacheBlogs stores a list read at generation gen. A write since then makes the list stale, so it is dropped.
func (s *BlogService) cacheBlogs(gen uint64, blogs []Blog) {
	if s.c == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen.Load() != gen {
		return
	}
	s.c.Set(common.CacheKeyBlogs, slices.Clone(blogs))
}

// GetBlogsByOwnerEmail returns the blog posts whose owner email matches exactly.
func (s *BlogService) GetBlogsByOwnerEmail(ctx context.Context, email string) ([]Blog, error) {
	v := common.NewValidator()
	validateRequired(v, email, "email")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByEmail(ctx, email)
}

// SearchBlogs returns the blog posts whose category or author contains term, ignoring case.
// An empty term returns every blog post.
func (s *BlogService) SearchBlogs(ctx context.Context, term string) ([]Blog, error) {
	if term == "" {
		return s.GetBlogs(ctx)
	}

	return s.m.searchBlogs(ctx, term)
}

// UpdateBlog overwrites the provided fields of a blog post and returns the stored result.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, req *UpdateBlogRequest) (*Blog, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	blog, err := s.m.updateBlog(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate()

	return blog, nil
}

// DeleteBlog deletes a blog post.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.m.deleteBlog(ctx, id); err != nil {
		return err
	}

	s.invalidate()

	return nil
}

func (s *BlogService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen.Add(1)
	if s.c != nil {
		s.c.Flush()
	}
}
