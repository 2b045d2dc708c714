//go:generate mockgen -source=store.go -destination=store_mock.go -package=posts
package posts

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"

	"github.com/uptrace/bun"

	"blogd/internal/app/errors"
	"blogd/internal/config/logger"
)

// Store is the data access contract for blog posts
type Store interface {
	List(ctx context.Context) ([]BlogPost, error)
	Get(ctx context.Context, id int64) (BlogPost, error)
	Random(ctx context.Context) (BlogPost, error)
	Create(ctx context.Context, post NewBlogPost) (BlogPost, error)
	Update(ctx context.Context, id int64, post BlogPost) (BlogPost, error)
	Delete(ctx context.Context, id int64) (BlogPost, error)
}

// sqlStore implements Store over a bun connection pool; every operation holds one connection
type sqlStore struct {
	db     *bun.DB
	random func() int
	log    logger.Logger
}

// NewSQLStore creates a Store backed by the given pool
func NewSQLStore(db *bun.DB, log logger.Logger) Store {
	return &sqlStore{
		db:     db,
		random: rand.Int,
		log:    log.WithComponent("STORE"),
	}
}

// List returns every stored post ordered by id
func (s *sqlStore) List(ctx context.Context) ([]BlogPost, error) {
	posts := make([]BlogPost, 0)

	err := s.withConn(ctx, "list", func(conn bun.Conn) error {
		if err := conn.NewSelect().Model(&posts).Order("id").Scan(ctx); err != nil {
			return errors.StoreFailure("list", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// Get returns the post with the given id
func (s *sqlStore) Get(ctx context.Context, id int64) (BlogPost, error) {
	var post BlogPost

	err := s.withConn(ctx, "get", func(conn bun.Conn) error {
		var err error

		post, err = s.find(ctx, conn, id)

		return err
	})

	return post, err
}

// Random returns a post picked uniformly among the existing ids
func (s *sqlStore) Random(ctx context.Context) (BlogPost, error) {
	var post BlogPost

	err := s.withConn(ctx, "random", func(conn bun.Conn) error {
		var ids []int64
		if err := conn.NewSelect().Model((*BlogPost)(nil)).Column("id").Order("id").Scan(ctx, &ids); err != nil {
			return errors.StoreFailure("random", err)
		}

		if len(ids) == 0 {
			return errors.ErrNoPosts
		}

		var err error

		post, err = s.find(ctx, conn, ids[s.random()%len(ids)])

		return err
	})

	return post, err
}

// Create inserts title and body only so published takes the column default
func (s *sqlStore) Create(ctx context.Context, newPost NewBlogPost) (BlogPost, error) {
	post := BlogPost{
		Title: newPost.Title,
		Body:  newPost.Body,
	}

	err := s.withConn(ctx, "create", func(conn bun.Conn) error {
		_, err := conn.NewInsert().
			Model(&post).
			Column("title", "body").
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.StoreFailure("create", err)
		}

		return nil
	})
	if err != nil {
		return BlogPost{}, err
	}

	s.log.Debug().Int64("id", post.ID).Msg("Created blog post")

	return post, nil
}

// Update replaces every mutable field of the post; the path id always wins over the payload
func (s *sqlStore) Update(ctx context.Context, id int64, post BlogPost) (BlogPost, error) {
	post.ID = id

	err := s.withConn(ctx, "update", func(conn bun.Conn) error {
		res, err := conn.NewUpdate().
			Model(&post).
			Column("title", "body", "published").
			WherePK().
			Returning("*").
			Exec(ctx)

		return s.affected("update", id, res, err)
	})
	if err != nil {
		return BlogPost{}, err
	}

	s.log.Debug().Int64("id", id).Msg("Updated blog post")

	return post, nil
}

// Delete removes the post and returns it as it was before removal
func (s *sqlStore) Delete(ctx context.Context, id int64) (BlogPost, error) {
	post := BlogPost{ID: id}

	err := s.withConn(ctx, "delete", func(conn bun.Conn) error {
		res, err := conn.NewDelete().
			Model(&post).
			WherePK().
			Returning("*").
			Exec(ctx)

		return s.affected("delete", id, res, err)
	})
	if err != nil {
		return BlogPost{}, err
	}

	s.log.Debug().Int64("id", id).Msg("Deleted blog post")

	return post, nil
}

// withConn checks out a pooled connection for the duration of fn and releases it on every path
func (s *sqlStore) withConn(ctx context.Context, op string, fn func(conn bun.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return errors.StoreFailure(op, err)
	}
	defer conn.Close()

	return fn(conn)
}

// find performs a primary key lookup on an already acquired connection
func (s *sqlStore) find(ctx context.Context, conn bun.Conn, id int64) (BlogPost, error) {
	post := BlogPost{ID: id}

	err := conn.NewSelect().Model(&post).WherePK().Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return BlogPost{}, notFound(id)
	case err != nil:
		return BlogPost{}, errors.StoreFailure("get", err)
	}

	return post, nil
}

// affected maps a write result with no matching row to ErrPostNotFound
func (s *sqlStore) affected(op string, id int64, res sql.Result, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(id)
	}

	if err != nil {
		return errors.StoreFailure(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.StoreFailure(op, err)
	}

	if n == 0 {
		return notFound(id)
	}

	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: id %d", errors.ErrPostNotFound, id)
}
