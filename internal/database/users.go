package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

func (d *Database) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load user", err)
	}
	return &user, nil
}

func (d *Database) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to check user", err)
	}
	return count > 0, nil
}

func (d *Database) UpdateUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Save(user).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update user", err)
	}
	return nil
}

func (d *Database) DeleteUser(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

func (d *Database) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := d.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list users", err)
	}
	return users, nil
}

func (d *Database) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	err := d.db.WithContext(ctx).
		Where("role = ?", role).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list users by role", err)
	}
	return users, nil
}

// RecordOwnerBan applies the first half of the ban cascade atomically:
// the ban flag and the cascade intent record land in one transaction, so
// a recorded ban always has a row marking whether the bulk update ran.
func (d *Database) RecordOwnerBan(ctx context.Context, ownerID uint, cascadeID string) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", ownerID).
			Update("is_banned", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&models.BanCascade{
			ID:      cascadeID,
			OwnerID: ownerID,
			Status:  models.CascadePending,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "owner not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to record owner ban", err)
	}
	return nil
}

func (d *Database) CompleteCascade(ctx context.Context, cascadeID string, disabled int64) error {
	now := time.Now()
	err := d.db.WithContext(ctx).
		Model(&models.BanCascade{}).
		Where("id = ?", cascadeID).
		Updates(map[string]interface{}{
			"status":              models.CascadeComplete,
			"properties_disabled": disabled,
			"completed_at":        &now,
			"last_error":          "",
		}).Error
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to complete cascade", err)
	}
	return nil
}

func (d *Database) MarkCascadeError(ctx context.Context, cascadeID string, lastError string) error {
	err := d.db.WithContext(ctx).
		Model(&models.BanCascade{}).
		Where("id = ?", cascadeID).
		Update("last_error", lastError).Error
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to record cascade error", err)
	}
	return nil
}

// PendingCascades lists half-applied ban cascades for reconciliation.
func (d *Database) PendingCascades(ctx context.Context) ([]models.BanCascade, error) {
	var cascades []models.BanCascade
	err := d.db.WithContext(ctx).
		Where("status = ?", models.CascadePending).
		Order("created_at").
		Find(&cascades).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list pending cascades", err)
	}
	return cascades, nil
}
