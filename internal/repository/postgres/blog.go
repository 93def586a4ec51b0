package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
)

type blogRepository struct {
	BaseRepository
}

func NewBlogRepository(base BaseRepository) repository.BlogRepository {
	return &blogRepository{base}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	query := `
		INSERT INTO blogs (
			id, author_id, title, content, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	blog.ID = uuid.New()
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		blog.ID,
		blog.AuthorID,
		blog.Title,
		blog.Content,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

func (r *blogRepository) Get(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	query := `
		SELECT * FROM blogs
		WHERE id = $1
	`

	var blog model.Blog
	if err := r.db.GetContext(ctx, &blog, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context) ([]*model.Blog, error) {
	query := `
		SELECT * FROM blogs
		ORDER BY created_at DESC
	`

	blogs := []*model.Blog{}
	if err := r.db.SelectContext(ctx, &blogs, query); err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	return blogs, nil
}

func (r *blogRepository) CreateComment(ctx context.Context, comment *model.BlogComment) error {
	query := `
		INSERT INTO blog_comments (
			id, blog_id, user_id, content, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.BlogID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog comment: %w", err)
	}

	return nil
}

func (r *blogRepository) ListComments(ctx context.Context, blogID uuid.UUID) ([]*model.BlogComment, error) {
	query := `
		SELECT * FROM blog_comments
		WHERE blog_id = $1
		ORDER BY created_at
	`

	comments := []*model.BlogComment{}
	if err := r.db.SelectContext(ctx, &comments, query, blogID); err != nil {
		return nil, fmt.Errorf("failed to list blog comments: %w", err)
	}

	return comments, nil
}
