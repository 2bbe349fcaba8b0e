// Package archive applies the soft-delete policy to records: reversible
// archival and restore for admin/manager, permanent deletion for admin only.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookhive/ops-backend/internal/authz"
	"github.com/bookhive/ops-backend/internal/logging"
)

var (
	// ErrPermissionDenied is returned when the role fails the soft-delete
	// policy check for the attempted operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotArchivable is returned for resources outside the soft-delete
	// capable set, or ones this service has no store wiring for.
	ErrNotArchivable = errors.New("resource does not support archival")
)

// Store is the persistence slice the archive service writes through.
type Store interface {
	ArchiveBooking(ctx context.Context, id uuid.UUID) error
	RestoreBooking(ctx context.Context, id uuid.UUID) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	ArchiveCustomer(ctx context.Context, id uuid.UUID) error
	RestoreCustomer(ctx context.Context, id uuid.UUID) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Archive soft-deletes one record of resource on behalf of role.
func (s *Service) Archive(ctx context.Context, role authz.Role, resource authz.Resource, id uuid.UUID) error {
	if !authz.CanSoftDelete(role, resource) {
		if !authz.SupportsSoftDelete(resource) {
			return fmt.Errorf("archive %s: %w", resource, ErrNotArchivable)
		}
		return fmt.Errorf("archive %s as %q: %w", resource, role, ErrPermissionDenied)
	}

	var err error
	switch resource {
	case authz.ResourceBookings:
		err = s.store.ArchiveBooking(ctx, id)
	case authz.ResourceCustomers:
		err = s.store.ArchiveCustomer(ctx, id)
	default:
		return fmt.Errorf("archive %s: %w", resource, ErrNotArchivable)
	}
	if err != nil {
		return fmt.Errorf("archive %s %s: %w", resource, id, err)
	}

	logging.Info("record archived", "resource", resource, "id", id, "role", role)
	return nil
}

// Restore un-archives one record of resource on behalf of role.
func (s *Service) Restore(ctx context.Context, role authz.Role, resource authz.Resource, id uuid.UUID) error {
	if !authz.CanRestore(role) {
		return fmt.Errorf("restore %s as %q: %w", resource, role, ErrPermissionDenied)
	}

	var err error
	switch resource {
	case authz.ResourceBookings:
		err = s.store.RestoreBooking(ctx, id)
	case authz.ResourceCustomers:
		err = s.store.RestoreCustomer(ctx, id)
	default:
		return fmt.Errorf("restore %s: %w", resource, ErrNotArchivable)
	}
	if err != nil {
		return fmt.Errorf("restore %s %s: %w", resource, id, err)
	}

	logging.Info("record restored", "resource", resource, "id", id, "role", role)
	return nil
}

// PermanentlyDelete irreversibly removes one record. Admin-exclusive.
func (s *Service) PermanentlyDelete(ctx context.Context, role authz.Role, resource authz.Resource, id uuid.UUID) error {
	if !authz.CanPermanentlyDelete(role) {
		return fmt.Errorf("permanently delete %s as %q: %w", resource, role, ErrPermissionDenied)
	}

	var err error
	switch resource {
	case authz.ResourceBookings:
		err = s.store.DeleteBooking(ctx, id)
	case authz.ResourceCustomers:
		err = s.store.DeleteCustomer(ctx, id)
	default:
		return fmt.Errorf("permanently delete %s: %w", resource, ErrNotArchivable)
	}
	if err != nil {
		return fmt.Errorf("permanently delete %s %s: %w", resource, id, err)
	}

	logging.Warn("record permanently deleted", "resource", resource, "id", id, "role", role)
	return nil
}
