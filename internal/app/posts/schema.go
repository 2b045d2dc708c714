package posts

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"blogd/internal/app/errors"
)

// schema declares the blog_posts table; published has no default so new rows store NULL
const schema = `
CREATE TABLE IF NOT EXISTS blog_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	published BOOLEAN
);
`

// CreateSchema creates the blog_posts table when it does not exist yet
func CreateSchema(ctx context.Context, db bun.IConn) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToCreateSchema, err)
	}

	return nil
}
