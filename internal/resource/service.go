// Package resource implements owner-scoped CRUD once for every record kind.
// A record is visible only to the user who owns it; anything else is reported
// as not found so callers cannot probe for foreign ids.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/bizmanager/internal"
	"github.com/frahmantamala/bizmanager/internal/core/events"
	"github.com/frahmantamala/bizmanager/internal/storage"
)

// Store binds one record kind to its storage operations. T is a pointer to
// the row type.
type Store[T any, F any] struct {
	Get    func(ctx context.Context, id int64) (T, error)
	List   func(ctx context.Context, ownerID int64, filter F) ([]T, error)
	Create func(ctx context.Context, rec T) (T, error)
	Update func(ctx context.Context, id int64, patch storage.Patch) (T, error)
	Delete func(ctx context.Context, id int64) (bool, error)

	// Owner resolves the user owning rec. Return storage.ErrNotFound when the
	// chain of ownership is broken.
	Owner func(ctx context.Context, rec T) (int64, error)
	ID    func(rec T) int64

	// Links lists the ids rec holds to other records; nil when it holds none.
	Links func(rec T) []Link
}

// DirectOwner is the Owner for records that carry their own user id.
func DirectOwner[T storage.Owned](_ context.Context, rec T) (int64, error) {
	return rec.OwnerID(), nil
}

// Link is an id one record holds to another. Field is its JSON key.
type Link struct {
	Field string
	ID    *int64
	Owner func(ctx context.Context, id int64) (int64, error)
}

// LinkTo builds a Link whose target is loaded with get.
func LinkTo[R storage.Owned](field string, id *int64, get func(ctx context.Context, id int64) (R, error)) Link {
	return Link{
		Field: field,
		ID:    id,
		Owner: func(ctx context.Context, id int64) (int64, error) {
			target, err := get(ctx, id)
			if err != nil {
				return 0, err
			}
			return target.OwnerID(), nil
		},
	}
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service[T any, F any] struct {
	kind   string
	store  Store[T, F]
	bus    Publisher
	logger *slog.Logger
}

// NewService wires a kind. bus may be nil when nobody listens for activity.
func NewService[T any, F any](kind string, store Store[T, F], bus Publisher, logger *slog.Logger) *Service[T, F] {
	return &Service[T, F]{
		kind:   kind,
		store:  store,
		bus:    bus,
		logger: logger.With("kind", kind),
	}
}

func (s *Service[T, F]) Kind() string {
	return s.kind
}

func (s *Service[T, F]) List(ctx context.Context, ownerID int64, filter F) ([]T, error) {
	records, err := s.store.List(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error("failed to list records", "error", err, "user_id", ownerID)
		return nil, err
	}
	return records, nil
}

func (s *Service[T, F]) Get(ctx context.Context, ownerID, id int64) (T, error) {
	var zero T

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("failed to get record", "error", err, "id", id)
		}
		return zero, err
	}
	if err := s.authorize(ctx, ownerID, rec); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("access to foreign record denied", "id", id, "user_id", ownerID)
		}
		return zero, err
	}
	return rec, nil
}

// Create stores rec once its owner is confirmed to be ownerID. For records
// owned through a parent this rejects parents the caller does not own.
func (s *Service[T, F]) Create(ctx context.Context, ownerID int64, rec T) (T, error) {
	var zero T

	if err := s.authorize(ctx, ownerID, rec); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("create under foreign parent denied", "user_id", ownerID)
		}
		return zero, err
	}
	if err := s.checkLinks(ctx, ownerID, rec, nil); err != nil {
		return zero, err
	}

	created, err := s.store.Create(ctx, rec)
	if err != nil {
		s.logger.Error("failed to create record", "error", err, "user_id", ownerID)
		return zero, err
	}

	s.publish(ctx, events.ActionCreated, s.store.ID(created), ownerID)
	s.logger.Info("record created", "id", s.store.ID(created), "user_id", ownerID)
	return created, nil
}

func (s *Service[T, F]) Update(ctx context.Context, ownerID, id int64, patch storage.Patch) (T, error) {
	var zero T

	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return zero, err
	}
	if s.store.Links != nil {
		merged, err := storage.Merge(&current, patch)
		if err != nil {
			return zero, err
		}
		if err := s.checkLinks(ctx, ownerID, *merged, patch); err != nil {
			return zero, err
		}
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrInvalidPatch) {
			s.logger.Error("failed to update record", "error", err, "id", id)
		}
		return zero, err
	}

	s.publish(ctx, events.ActionUpdated, id, ownerID)
	return updated, nil
}

func (s *Service[T, F]) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete record", "error", err, "id", id)
		return err
	}
	if !deleted {
		// Removed by a concurrent request between the check and the delete.
		return storage.ErrNotFound
	}

	s.publish(ctx, events.ActionDeleted, id, ownerID)
	s.logger.Info("record deleted", "id", id, "user_id", ownerID)
	return nil
}

// checkLinks rejects a link to a record ownerID cannot see. When patch is set
// only the links it writes are checked, so a record pointing at a since
// deleted target can still be edited.
func (s *Service[T, F]) checkLinks(ctx context.Context, ownerID int64, rec T, patch storage.Patch) error {
	if s.store.Links == nil {
		return nil
	}
	for _, link := range s.store.Links(rec) {
		if link.ID == nil {
			continue
		}
		if patch != nil {
			if _, ok := patch[link.Field]; !ok {
				continue
			}
		}

		owner, err := link.Owner(ctx, *link.ID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("failed to resolve link", "error", err, "field", link.Field)
			return err
		}
		if err != nil || owner != ownerID {
			s.logger.Warn("link to foreign or missing record rejected", "field", link.Field, "user_id", ownerID)
			return internal.NewValidationFieldError(link.Field,
				fmt.Sprintf("%s does not name one of your records", link.Field), internal.ErrCodeInvalidReference)
		}
	}
	return nil
}

func (s *Service[T, F]) authorize(ctx context.Context, ownerID int64, rec T) error {
	owner, err := s.store.Owner(ctx, rec)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Service[T, F]) publish(ctx context.Context, action events.Action, id, ownerID int64) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewActivity(s.kind, action, id, ownerID))
}
