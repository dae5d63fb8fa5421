package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/hub"
	"gameverse/backend/internal/models"
	"gameverse/backend/pkg/jwt"

	"github.com/google/uuid"
)

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return apperr.Conflict("username or email already exists")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (f *fakeUserStore) FindByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (f *fakeUserStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokens struct {
	issued []jwt.Subject
}

func (f *fakeTokens) GenerateToken(sub jwt.Subject) (string, error) {
	f.issued = append(f.issued, sub)
	return "token-for-" + sub.ID.String(), nil
}

type fakeGameStore struct {
	games     map[uuid.UUID]*models.Game
	posts     *fakePostStore
	writes    int
	createErr error
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{games: map[uuid.UUID]*models.Game{}}
}

func (f *fakeGameStore) Create(_ context.Context, game *models.Game) error {
	if f.createErr != nil {
		return f.createErr
	}
	game.ID = uuid.New()
	game.CreatedAt = time.Now().UTC()
	game.UpdatedAt = game.CreatedAt
	stored := *game
	f.games[game.ID] = &stored
	return nil
}

func (f *fakeGameStore) FindByID(_ context.Context, id uuid.UUID) (*models.Game, error) {
	if g, ok := f.games[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, apperr.NotFound("game not found")
}

func (f *fakeGameStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.games[id]
	return ok, nil
}

func (f *fakeGameStore) List(_ context.Context) ([]models.Game, error) {
	games := []models.Game{}
	for _, g := range f.games {
		games = append(games, *g)
	}
	return games, nil
}

func (f *fakeGameStore) Update(_ context.Context, id uuid.UUID, mutate func(*models.Game) error) error {
	g, ok := f.games[id]
	if !ok {
		return apperr.NotFound("game not found")
	}
	working := *g
	if err := mutate(&working); err != nil {
		return err
	}
	f.games[id] = &working
	f.writes++
	return nil
}

func (f *fakeGameStore) Delete(_ context.Context, id uuid.UUID, check func(*models.Game) error) error {
	g, ok := f.games[id]
	if !ok {
		return apperr.NotFound("game not found")
	}
	working := *g
	if err := check(&working); err != nil {
		return err
	}
	if f.posts != nil {
		for _, p := range f.posts.posts {
			if p.GameID != nil && *p.GameID == id {
				p.GameID = nil
			}
		}
	}
	delete(f.games, id)
	f.writes++
	return nil
}

type fakePostStore struct {
	posts map[uuid.UUID]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[uuid.UUID]*models.Post{}}
}

func (f *fakePostStore) Create(_ context.Context, post *models.Post) error {
	post.ID = uuid.New()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostStore) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperr.NotFound("post not found")
}

func (f *fakePostStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.posts[id]
	return ok, nil
}

func (f *fakePostStore) List(_ context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	for _, p := range f.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

func (f *fakePostStore) Update(_ context.Context, id uuid.UUID, mutate func(*models.Post) error) error {
	p, ok := f.posts[id]
	if !ok {
		return apperr.NotFound("post not found")
	}
	working := *p
	if err := mutate(&working); err != nil {
		return err
	}
	f.posts[id] = &working
	return nil
}

func (f *fakePostStore) Delete(_ context.Context, id uuid.UUID, check func(*models.Post) error) error {
	p, ok := f.posts[id]
	if !ok {
		return apperr.NotFound("post not found")
	}
	working := *p
	if err := check(&working); err != nil {
		return err
	}
	delete(f.posts, id)
	return nil
}

type fakeCommentStore struct {
	comments map[uuid.UUID]*models.Comment
	order    []uuid.UUID
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[uuid.UUID]*models.Comment{}}
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now().UTC()
	stored := *comment
	f.comments[comment.ID] = &stored
	f.order = append(f.order, comment.ID)
	return nil
}

func (f *fakeCommentStore) FindByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	if c, ok := f.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("comment not found")
}

func (f *fakeCommentStore) ListByPost(_ context.Context, postID uuid.UUID, page, limit int) ([]models.Comment, int64, error) {
	var matching []models.Comment
	for _, id := range f.order {
		if c, ok := f.comments[id]; ok && c.PostID == postID {
			matching = append(matching, *c)
		}
	}
	total := int64(len(matching))
	start := (page - 1) * limit
	if start >= len(matching) {
		return []models.Comment{}, total, nil
	}
	end := start + limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], total, nil
}

func (f *fakeCommentStore) Update(_ context.Context, id uuid.UUID, mutate func(*models.Comment) error) error {
	c, ok := f.comments[id]
	if !ok {
		return apperr.NotFound("comment not found")
	}
	working := *c
	if err := mutate(&working); err != nil {
		return err
	}
	f.comments[id] = &working
	return nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id uuid.UUID, check func(*models.Comment) error) error {
	c, ok := f.comments[id]
	if !ok {
		return apperr.NotFound("comment not found")
	}
	if err := check(c); err != nil {
		return err
	}
	delete(f.comments, id)
	return nil
}

type recordedEvent struct {
	topic string
	event hub.Event
}

type fakePublisher struct {
	events []recordedEvent
}

func (f *fakePublisher) Broadcast(topic string, event hub.Event) {
	f.events = append(f.events, recordedEvent{topic: topic, event: event})
}

func (f *fakePublisher) topics() []string {
	var topics []string
	for _, e := range f.events {
		topics = append(topics, e.topic)
	}
	sort.Strings(topics)
	return topics
}
