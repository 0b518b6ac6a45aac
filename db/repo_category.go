package db

import (
	"context"

	"libstack/models"
)

func (r *Repo) CreateCategory(ctx context.Context, id, name, description string) (*models.Category, error) {
	c := &models.Category{ID: id, Name: name, Description: description}
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

func (r *Repo) FindCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return &c, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cs []models.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&cs).Error
	return cs, err
}

func (r *Repo) UpdateCategory(ctx context.Context, id, name, description string) (*models.Category, error) {
	c, err := r.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = description
	if err := r.DB.WithContext(ctx).Save(c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	// Books keep their rows; the category reference is cleared first.
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return err
	}
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
