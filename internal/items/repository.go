package items

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rewearhq/rewear-backend/pkg/db/models"
	"github.com/rewearhq/rewear-backend/pkg/enums"
	"github.com/rewearhq/rewear-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository encapsulates item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an items repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new listing and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateItemDTO) (*models.Item, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads a listing together with its uploader.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		Preload("Uploader").
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAvailable returns a cursor page of available listings, newest first.
func (r *Repository) ListAvailable(ctx context.Context, filter BrowseFilter, page pagination.Params) (ItemsPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(page.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(page.Limit)
	cursorValue := strings.TrimSpace(page.Cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return ItemsPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Preload("Uploader").
		Where("status = ?", enums.ItemStatusAvailable)

	countQuery := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("status = ?", enums.ItemStatusAvailable)

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
		countQuery = countQuery.Where("category = ?", *filter.Category)
	}
	if filter.ExcludeUploader != nil {
		query = query.Where("uploader_id <> ?", *filter.ExcludeUploader)
		countQuery = countQuery.Where("uploader_id <> ?", *filter.ExcludeUploader)
	}

	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var records []models.Item
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error; err != nil {
		return ItemsPageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	var totalCount int64
	if err := countQuery.Count(&totalCount).Error; err != nil {
		return ItemsPageDTO{}, err
	}

	items := make([]ItemDTO, 0, len(resultRows))
	for i := range resultRows {
		items = append(items, *FromModel(&resultRows[i]))
	}

	return ItemsPageDTO{
		Items:      items,
		NextCursor: nextCursor,
		Total:      int(totalCount),
	}, nil
}

// ListByUploader returns all listings belonging to the given user, newest first.
// When availableOnly is set, swapped listings are filtered out.
func (r *Repository) ListByUploader(ctx context.Context, uploaderID uuid.UUID, availableOnly bool) ([]models.Item, error) {
	query := r.db.WithContext(ctx).
		Where("uploader_id = ?", uploaderID)
	if availableOnly {
		query = query.Where("status = ?", enums.ItemStatusAvailable)
	}

	var records []models.Item
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
