package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
)

// BlogPostDTO is the public view of a blog post.
type BlogPostDTO struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       string     `json:"content"`
	ImageURL      *string    `json:"image_url,omitempty"`
	AuthorID      *uuid.UUID `json:"author_id,omitempty"`
	Published     bool       `json:"published"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BlogPostsPageDTO is a cursor-paginated blog listing.
type BlogPostsPageDTO struct {
	Posts      []BlogPostDTO `json:"posts"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// UpsertBlogPostRequest is the admin payload for blog create/update.
type UpsertBlogPostRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=300"`
	Slug      string  `json:"slug" validate:"required,min=1,max=300"`
	Excerpt   *string `json:"excerpt,omitempty" validate:"omitempty,max=1000"`
	Content   string  `json:"content" validate:"required"`
	ImageURL  *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Published bool    `json:"published"`
}

// FAQDTO is the public view of a help entry.
type FAQDTO struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `json:"category"`
	OrderIndex int       `json:"order_index"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UpsertFAQRequest is the admin payload for FAQ create/update.
type UpsertFAQRequest struct {
	Question   string `json:"question" validate:"required,min=1,max=1000"`
	Answer     string `json:"answer" validate:"required,min=1,max=5000"`
	Category   string `json:"category" validate:"required,min=1,max=100"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
	Active     bool   `json:"active"`
}

// SettingDTO is one site setting pair.
type SettingDTO struct {
	Key       string    `json:"key"`
	Value     *string   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest replaces the values of the provided keys.
type UpdateSettingsRequest struct {
	Settings map[string]*string `json:"settings" validate:"required,min=1"`
}

// BlogPostFromModel maps a blog post row to its public view.
func BlogPostFromModel(post *models.BlogPost) BlogPostDTO {
	return BlogPostDTO{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Excerpt:       post.Excerpt,
		Content:       post.Content,
		ImageURL:      post.ImageURL,
		AuthorID:      post.AuthorID,
		Published:     post.Published,
		PublishedDate: post.PublishedDate,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

// FAQFromModel maps a FAQ row to its public view.
func FAQFromModel(faq *models.FAQ) FAQDTO {
	return FAQDTO{
		ID:         faq.ID,
		Question:   faq.Question,
		Answer:     faq.Answer,
		Category:   faq.Category,
		OrderIndex: faq.OrderIndex,
		Active:     faq.Active,
		CreatedAt:  faq.CreatedAt,
	}
}

// SettingFromModel maps a setting row to its public view.
func SettingFromModel(setting *models.SiteSetting) SettingDTO {
	return SettingDTO{
		Key:       setting.Key,
		Value:     setting.Value,
		UpdatedAt: setting.UpdatedAt,
	}
}
