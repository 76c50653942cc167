// Package moderation owns property status transitions and the owner-ban
// cascade. Status never changes anywhere else.
package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dgdorm/server/internal/apperr"
	"dgdorm/server/internal/models"
)

// Store is the slice of the persistent store the machine needs.
type Store interface {
	PropertyByID(ctx context.Context, id uint) (*models.Property, error)
	SetPropertyStatus(ctx context.Context, id uint, status models.PropertyStatus) error
	UserByID(ctx context.Context, id uint) (*models.User, error)
	RecordOwnerBan(ctx context.Context, ownerID uint, cascadeID string) error
	DisableOwnerProperties(ctx context.Context, ownerID uint) (int64, error)
	CompleteCascade(ctx context.Context, cascadeID string, disabled int64) error
	MarkCascadeError(ctx context.Context, cascadeID string, lastError string) error
}

type Machine struct {
	store      Store
	logger     *logrus.Logger
	maxRetries int
	retryDelay time.Duration
}

func NewMachine(store Store, logger *logrus.Logger, maxRetries int, retryDelay time.Duration) *Machine {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Machine{
		store:      store,
		logger:     logger,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Approve sets status to approved regardless of prior state. A rejected
// property can be re-approved; there is no lock-out.
func (m *Machine) Approve(ctx context.Context, propertyID uint) (*models.Property, error) {
	return m.transition(ctx, propertyID, models.StatusApproved)
}

// Reject sets status to rejected regardless of prior state.
func (m *Machine) Reject(ctx context.Context, propertyID uint) (*models.Property, error) {
	return m.transition(ctx, propertyID, models.StatusRejected)
}

func (m *Machine) transition(ctx context.Context, propertyID uint, status models.PropertyStatus) (*models.Property, error) {
	if err := m.store.SetPropertyStatus(ctx, propertyID, status); err != nil {
		return nil, err
	}
	property, err := m.store.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	m.logger.WithFields(logrus.Fields{
		"property_id": propertyID,
		"status":      status,
	}).Info("Property status updated")
	return property, nil
}

// BanResult reports the cascade outcome. CascadeID identifies the intent
// record even when the bulk update did not finish.
type BanResult struct {
	CascadeID          string `json:"cascade_id"`
	OwnerID            uint   `json:"owner_id"`
	PropertiesDisabled int64  `json:"properties_disabled"`
}

// BanOwner bans an owner and disables every property they own. The ban
// flag and a cascade intent record land in one transaction; the bulk
// availability update then runs on a detached context so a client
// disconnect cannot abandon it. If the bulk update keeps failing the
// intent record stays pending and the caller gets a PartialFailure
// naming the cascade, never a silently half-applied state.
func (m *Machine) BanOwner(ctx context.Context, ownerID uint) (*BanResult, error) {
	owner, err := m.store.UserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != models.RoleOwner {
		return nil, apperr.New(apperr.NotFound, "owner not found")
	}

	cascadeID := uuid.NewString()
	if err := m.store.RecordOwnerBan(ctx, ownerID, cascadeID); err != nil {
		return nil, err
	}

	// The request context may be gone by the time the bulk update runs.
	detached := context.WithoutCancel(ctx)

	var disabled int64
	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		if attempt > 1 {
			time.Sleep(m.retryDelay)
		}
		disabled, lastErr = m.store.DisableOwnerProperties(detached, ownerID)
		if lastErr == nil {
			break
		}
		m.logger.WithError(lastErr).WithFields(logrus.Fields{
			"owner_id":   ownerID,
			"cascade_id": cascadeID,
			"attempt":    attempt,
		}).Error("Failed to disable owner properties")
	}

	if lastErr != nil {
		if err := m.store.MarkCascadeError(detached, cascadeID, lastErr.Error()); err != nil {
			m.logger.WithError(err).Error("Failed to record cascade error")
		}
		return &BanResult{CascadeID: cascadeID, OwnerID: ownerID},
			apperr.Wrap(apperr.PartialFailure, "owner banned but properties not disabled, cascade "+cascadeID+" pending", lastErr)
	}

	if err := m.store.CompleteCascade(detached, cascadeID, disabled); err != nil {
		// The properties are disabled; only the bookkeeping row lagged.
		m.logger.WithError(err).WithField("cascade_id", cascadeID).Error("Failed to mark cascade complete")
	}

	m.logger.WithFields(logrus.Fields{
		"owner_id":   ownerID,
		"cascade_id": cascadeID,
		"disabled":   disabled,
	}).Info("Owner banned")

	return &BanResult{
		CascadeID:          cascadeID,
		OwnerID:            ownerID,
		PropertiesDisabled: disabled,
	}, nil
}
