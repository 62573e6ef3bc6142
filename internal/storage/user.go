package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

// UserEmail returns the stored user email, or DefaultUserEmail when none has
// been saved yet.
func UserEmail(ctx context.Context, kv domain.KVStore) string {
	var email string
	if err := kv.Get(ctx, KeyUserEmail, &email); err != nil || strings.TrimSpace(email) == "" {
		return DefaultUserEmail
	}
	return email
}

// Profile returns the stored onboarding profile.
func Profile(ctx context.Context, kv domain.KVStore) (*domain.Profile, error) {
	var p domain.Profile
	if err := kv.Get(ctx, KeyProfile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// IsMissing reports whether err means the key was never stored.
func IsMissing(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
