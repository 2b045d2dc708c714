package posts

import (
	"context"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"

	"blogd/internal/app/errors"
)

// memoryStore keeps posts in process memory; it serves the fixture variant of the service
type memoryStore struct {
	mu     sync.RWMutex
	posts  map[int64]BlogPost
	nextID int64
	random func() int
}

// NewMemoryStore creates an in-memory Store seeded with the given posts
func NewMemoryStore(seed ...NewBlogPost) Store {
	s := &memoryStore{
		posts:  make(map[int64]BlogPost),
		nextID: 1,
		random: rand.Int,
	}

	for _, post := range seed {
		s.insert(post)
	}

	return s
}

// Fixtures returns the posts the memory driver starts with
func Fixtures() []NewBlogPost {
	return []NewBlogPost{
		{Title: "Hello", Body: "The first post on this blog."},
		{Title: "Second thoughts", Body: "Still here, still writing."},
		{Title: "Third time", Body: "Posts are stored in memory and vanish on restart."},
	}
}

// List returns every stored post ordered by id
func (s *memoryStore) List(ctx context.Context) ([]BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]BlogPost, 0, len(s.posts))
	for _, id := range s.sortedIDs() {
		posts = append(posts, s.posts[id].clone())
	}

	return posts, nil
}

// Get returns the post with the given id
func (s *memoryStore) Get(ctx context.Context, id int64) (BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return BlogPost{}, notFound(id)
	}

	return post.clone(), nil
}

// Random returns a post picked uniformly among the existing ids
func (s *memoryStore) Random(ctx context.Context) (BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.sortedIDs()
	if len(ids) == 0 {
		return BlogPost{}, errors.ErrNoPosts
	}

	return s.posts[ids[s.random()%len(ids)]].clone(), nil
}

// Create stores a new post with a fresh id and no published flag
func (s *memoryStore) Create(ctx context.Context, post NewBlogPost) (BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(post).clone(), nil
}

// Update replaces every mutable field of the post; the path id always wins over the payload
func (s *memoryStore) Update(ctx context.Context, id int64, post BlogPost) (BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return BlogPost{}, notFound(id)
	}

	post.ID = id
	s.posts[id] = post.clone()

	return post.clone(), nil
}

// Delete removes the post and returns it as it was before removal
func (s *memoryStore) Delete(ctx context.Context, id int64) (BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return BlogPost{}, notFound(id)
	}

	delete(s.posts, id)

	return post, nil
}

// insert assigns the next id; ids are never reused, matching an AUTOINCREMENT column
func (s *memoryStore) insert(newPost NewBlogPost) BlogPost {
	post := BlogPost{
		ID:    s.nextID,
		Title: newPost.Title,
		Body:  newPost.Body,
	}

	s.posts[post.ID] = post
	s.nextID++

	return post
}

func (s *memoryStore) sortedIDs() []int64 {
	return slices.Sorted(maps.Keys(s.posts))
}
