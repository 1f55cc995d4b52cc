package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// Service exposes the storefront content surface and its admin console.
type Service interface {
	ListPublishedPosts(ctx context.Context, cursor string, limit int) (BlogPostsPageDTO, error)
	GetPublishedPost(ctx context.Context, slug string) (BlogPostDTO, error)
	ListFAQs(ctx context.Context) ([]FAQDTO, error)
	GetSettings(ctx context.Context) (map[string]*string, error)

	AdminListPosts(ctx context.Context, cursor string, limit int) (BlogPostsPageDTO, error)
	CreatePost(ctx context.Context, authorID uuid.UUID, req UpsertBlogPostRequest) (BlogPostDTO, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req UpsertBlogPostRequest) (BlogPostDTO, error)
	DeletePost(ctx context.Context, id uuid.UUID) error

	AdminListFAQs(ctx context.Context) ([]FAQDTO, error)
	CreateFAQ(ctx context.Context, req UpsertFAQRequest) (FAQDTO, error)
	UpdateFAQ(ctx context.Context, id uuid.UUID, req UpsertFAQRequest) (FAQDTO, error)
	DeleteFAQ(ctx context.Context, id uuid.UUID) error

	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (map[string]*string, error)
}

// ServiceParams groups dependencies for the content service.
type ServiceParams struct {
	ContentRepo *Repository
}

type service struct {
	content *Repository
}

// NewService builds a content service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ContentRepo == nil {
		return nil, fmt.Errorf("content repository is required")
	}
	return &service{content: params.ContentRepo}, nil
}

// ListPublishedPosts pages published posts for the storefront blog.
func (s *service) ListPublishedPosts(ctx context.Context, cursor string, limit int) (BlogPostsPageDTO, error) {
	return s.listPosts(ctx, true, cursor, limit)
}

// GetPublishedPost resolves a storefront blog route; drafts read as missing.
func (s *service) GetPublishedPost(ctx context.Context, slug string) (BlogPostDTO, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return BlogPostDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	post, err := s.content.FindBlogPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BlogPostDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "post not found")
		}
		return BlogPostDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}
	if !post.Published {
		return BlogPostDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	return BlogPostFromModel(post), nil
}

// ListFAQs returns active FAQ entries for the storefront.
func (s *service) ListFAQs(ctx context.Context) ([]FAQDTO, error) {
	return s.listFAQs(ctx, true)
}

// GetSettings returns the full settings map.
func (s *service) GetSettings(ctx context.Context) (map[string]*string, error) {
	rows, err := s.content.ListSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	settings := make(map[string]*string, len(rows))
	for i := range rows {
		settings[rows[i].Key] = rows[i].Value
	}
	return settings, nil
}

// AdminListPosts pages every post, drafts included.
func (s *service) AdminListPosts(ctx context.Context, cursor string, limit int) (BlogPostsPageDTO, error) {
	return s.listPosts(ctx, false, cursor, limit)
}

// CreatePost inserts an admin-authored post. Publishing stamps the date.
func (s *service) CreatePost(ctx context.Context, authorID uuid.UUID, req UpsertBlogPostRequest) (BlogPostDTO, error) {
	post := &models.BlogPost{
		Title:     strings.TrimSpace(req.Title),
		Slug:      strings.TrimSpace(strings.ToLower(req.Slug)),
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	}
	if authorID != uuid.Nil {
		post.AuthorID = &authorID
	}
	if req.Published {
		now := time.Now().UTC()
		post.PublishedDate = &now
	}

	if _, err := s.content.CreateBlogPost(ctx, post); err != nil {
		if db.IsUniqueViolation(err, "") {
			return BlogPostDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already exists")
		}
		return BlogPostDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
	}
	return BlogPostFromModel(post), nil
}

// UpdatePost replaces the editable fields; first publish stamps the date.
func (s *service) UpdatePost(ctx context.Context, id uuid.UUID, req UpsertBlogPostRequest) (BlogPostDTO, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return BlogPostDTO{}, err
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Slug = strings.TrimSpace(strings.ToLower(req.Slug))
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.ImageURL = req.ImageURL
	if req.Published && !post.Published && post.PublishedDate == nil {
		now := time.Now().UTC()
		post.PublishedDate = &now
	}
	post.Published = req.Published

	if _, err := s.content.UpdateBlogPost(ctx, post); err != nil {
		if db.IsUniqueViolation(err, "") {
			return BlogPostDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already exists")
		}
		return BlogPostDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update post")
	}
	return BlogPostFromModel(post), nil
}

// DeletePost removes a post entirely.
func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}
	affected, err := s.content.DeleteBlogPost(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete post")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}
	return nil
}

// AdminListFAQs lists every FAQ including disabled ones.
func (s *service) AdminListFAQs(ctx context.Context) ([]FAQDTO, error) {
	return s.listFAQs(ctx, false)
}

// CreateFAQ inserts a help entry.
func (s *service) CreateFAQ(ctx context.Context, req UpsertFAQRequest) (FAQDTO, error) {
	faq := &models.FAQ{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		Category:   strings.TrimSpace(strings.ToLower(req.Category)),
		OrderIndex: req.OrderIndex,
		Active:     req.Active,
	}
	if _, err := s.content.CreateFAQ(ctx, faq); err != nil {
		return FAQDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create faq")
	}
	return FAQFromModel(faq), nil
}

// UpdateFAQ replaces the editable fields on a help entry.
func (s *service) UpdateFAQ(ctx context.Context, id uuid.UUID, req UpsertFAQRequest) (FAQDTO, error) {
	faq, err := s.content.FindFAQByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FAQDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "faq not found")
		}
		return FAQDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load faq")
	}

	faq.Question = strings.TrimSpace(req.Question)
	faq.Answer = strings.TrimSpace(req.Answer)
	faq.Category = strings.TrimSpace(strings.ToLower(req.Category))
	faq.OrderIndex = req.OrderIndex
	faq.Active = req.Active

	if _, err := s.content.UpdateFAQ(ctx, faq); err != nil {
		return FAQDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update faq")
	}
	return FAQFromModel(faq), nil
}

// DeleteFAQ removes a help entry.
func (s *service) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "faq id is required")
	}
	affected, err := s.content.DeleteFAQ(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete faq")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
	}
	return nil
}

// UpdateSettings upserts each provided pair and returns the full map.
func (s *service) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (map[string]*string, error) {
	if len(req.Settings) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one setting is required")
	}
	for key, value := range req.Settings {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting key cannot be empty")
		}
		if err := s.content.UpsertSetting(ctx, key, value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert setting")
		}
	}
	return s.GetSettings(ctx)
}

func (s *service) listPosts(ctx context.Context, publishedOnly bool, cursor string, limit int) (BlogPostsPageDTO, error) {
	rows, nextCursor, err := s.content.ListBlogPosts(ctx, publishedOnly, cursor, limit)
	if err != nil {
		return BlogPostsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	posts := make([]BlogPostDTO, 0, len(rows))
	for i := range rows {
		posts = append(posts, BlogPostFromModel(&rows[i]))
	}
	return BlogPostsPageDTO{Posts: posts, NextCursor: nextCursor}, nil
}

func (s *service) listFAQs(ctx context.Context, activeOnly bool) ([]FAQDTO, error) {
	rows, err := s.content.ListFAQs(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list faqs")
	}
	faqs := make([]FAQDTO, 0, len(rows))
	for i := range rows {
		faqs = append(faqs, FAQFromModel(&rows[i]))
	}
	return faqs, nil
}

func (s *service) loadPost(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}
	post, err := s.content.FindBlogPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}
	return post, nil
}
