package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/pagination"
)

// Repository encapsulates blog, FAQ, and site-setting persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a content repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBlogPosts pages blog posts newest first. When publishedOnly is set,
// drafts are excluded.
func (r *Repository) ListBlogPosts(ctx context.Context, publishedOnly bool, cursor string, limit int) ([]models.BlogPost, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decoded, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).Model(&models.BlogPost{})
	if publishedOnly {
		query = query.Where("published = TRUE")
	}
	if decoded != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
	}

	var rows []models.BlogPost
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

// FindBlogPostBySlug loads a blog post by slug.
func (r *Repository) FindBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBlogPostByID loads a blog post by primary key.
func (r *Repository) FindBlogPostByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateBlogPost inserts a blog post row.
func (r *Repository) CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateBlogPost saves the full blog post row.
func (r *Repository) UpdateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeleteBlogPost removes a blog post by ID.
func (r *Repository) DeleteBlogPost(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlogPost{})
	return result.RowsAffected, result.Error
}

// ListFAQs returns FAQ rows ordered by category then order index. When
// activeOnly is set, disabled entries are excluded.
func (r *Repository) ListFAQs(ctx context.Context, activeOnly bool) ([]models.FAQ, error) {
	query := r.db.WithContext(ctx).Model(&models.FAQ{})
	if activeOnly {
		query = query.Where("active = TRUE")
	}
	var rows []models.FAQ
	err := query.
		Order("category ASC").Order("order_index ASC").Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// FindFAQByID loads a FAQ row by primary key.
func (r *Repository) FindFAQByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	var faq models.FAQ
	if err := r.db.WithContext(ctx).First(&faq, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

// CreateFAQ inserts a FAQ row.
func (r *Repository) CreateFAQ(ctx context.Context, faq *models.FAQ) (*models.FAQ, error) {
	if err := r.db.WithContext(ctx).Create(faq).Error; err != nil {
		return nil, err
	}
	return faq, nil
}

// UpdateFAQ saves the full FAQ row.
func (r *Repository) UpdateFAQ(ctx context.Context, faq *models.FAQ) (*models.FAQ, error) {
	if err := r.db.WithContext(ctx).Save(faq).Error; err != nil {
		return nil, err
	}
	return faq, nil
}

// DeleteFAQ removes a FAQ row by ID.
func (r *Repository) DeleteFAQ(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FAQ{})
	return result.RowsAffected, result.Error
}

// ListSettings returns every site setting ordered by key.
func (r *Repository) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	var rows []models.SiteSetting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error
	return rows, err
}

// UpsertSetting writes one key/value pair, inserting or replacing.
func (r *Repository) UpsertSetting(ctx context.Context, key string, value *string) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO site_settings (key, value)
VALUES (?, ?)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value).Error
}
