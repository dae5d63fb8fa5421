package service

import (
	"context"
	"strings"
	"time"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/hub"
	"gameverse/backend/internal/models"

	"github.com/google/uuid"
)

// Feed event types published on post mutations.
const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
)

var validPostTypes = map[models.PostType]bool{
	models.PostTypeDevlog:     true,
	models.PostTypeReview:     true,
	models.PostTypeNews:       true,
	models.PostTypeDiscussion: true,
}

// PostInput holds the caller supplied fields of a post.
// GameID is only honoured on creation; the game link is fixed afterwards.
type PostInput struct {
	Title       string
	BodyContent string
	GameID      *uuid.UUID
	PostType    models.PostType
}

func (in *PostInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.BodyContent = strings.TrimSpace(in.BodyContent)
	in.PostType = models.PostType(strings.ToLower(strings.TrimSpace(string(in.PostType))))

	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	if in.BodyContent == "" {
		return apperr.Validation("bodyContent is required")
	}
	if in.PostType != "" && !validPostTypes[in.PostType] {
		return apperr.Validation("postType must be one of devlog, review, news, discussion")
	}
	return nil
}

// PostEvent is the feed payload. It never carries author credentials.
type PostEvent struct {
	ID        uuid.UUID       `json:"id"`
	AuthorID  uuid.UUID       `json:"authorId"`
	GameID    *uuid.UUID      `json:"gameId,omitempty"`
	Title     string          `json:"title,omitempty"`
	PostType  models.PostType `json:"postType,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// FeedTopicAll receives every post event; GameFeedTopic only the events of one game.
const FeedTopicAll = "posts"

func GameFeedTopic(gameID uuid.UUID) string {
	return "game:" + gameID.String()
}

// PostService enforces the author-only mutation policy for posts.
type PostService struct {
	posts PostStore
	games GameStore
	feed  Publisher
}

func NewPostService(posts PostStore, games GameStore, feed Publisher) *PostService {
	return &PostService{posts: posts, games: games, feed: feed}
}

// Create stores a new post written by actorID.
func (s *PostService) Create(ctx context.Context, in PostInput, actorID uuid.UUID) (*models.Post, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if in.PostType == "" {
		in.PostType = models.PostTypeDevlog
	}
	if in.GameID != nil {
		exists, err := s.games.Exists(ctx, *in.GameID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.Validation("referenced game does not exist")
		}
	}

	post := &models.Post{
		AuthorID:    actorID,
		GameID:      in.GameID,
		Title:       in.Title,
		BodyContent: in.BodyContent,
		PostType:    in.PostType,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.publish(EventPostCreated, post)
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

// Authorize reports whether actorID may mutate the post, without writing anything.
func (s *PostService) Authorize(ctx context.Context, id, actorID uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return checkPostAuthor(post, actorID, "edit")
}

// Update overwrites title, body and type. An empty type keeps the current one.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, in PostInput, actorID uuid.UUID) error {
	var updated models.Post
	err := s.posts.Update(ctx, id, func(post *models.Post) error {
		if err := checkPostAuthor(post, actorID, "edit"); err != nil {
			return err
		}
		if err := in.normalize(); err != nil {
			return err
		}
		post.Title = in.Title
		post.BodyContent = in.BodyContent
		if in.PostType != "" {
			post.PostType = in.PostType
		}
		post.UpdatedAt = time.Now().UTC()
		updated = *post
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(EventPostUpdated, &updated)
	return nil
}

func (s *PostService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	var deleted models.Post
	err := s.posts.Delete(ctx, id, func(post *models.Post) error {
		if err := checkPostAuthor(post, actorID, "delete"); err != nil {
			return err
		}
		deleted = *post
		return nil
	})
	if err != nil {
		return err
	}
	deleted.UpdatedAt = time.Now().UTC()
	s.publish(EventPostDeleted, &deleted)
	return nil
}

func (s *PostService) publish(eventType string, post *models.Post) {
	if s.feed == nil {
		return
	}
	event := hub.Event{
		Type: eventType,
		Payload: PostEvent{
			ID:        post.ID,
			AuthorID:  post.AuthorID,
			GameID:    post.GameID,
			Title:     post.Title,
			PostType:  post.PostType,
			UpdatedAt: post.UpdatedAt,
		},
	}
	s.feed.Broadcast(FeedTopicAll, event)
	if post.GameID != nil {
		s.feed.Broadcast(GameFeedTopic(*post.GameID), event)
	}
}

func checkPostAuthor(post *models.Post, actorID uuid.UUID, action string) error {
	if post.AuthorID != actorID {
		return apperr.Forbidden("you do not have permission to " + action + " this post")
	}
	return nil
}
