package repository

import (
	"context"
	"net/http"
	"time"

	"clinic-portal/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
)

// API is the clinic REST client the repositories talk through.
type API interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
	Send(ctx context.Context, method, path string, body, out interface{}) (http.Header, error)
}

// Reference data keys.
const (
	keySpecialties = "ref:specialties"
	keyCategories  = "ref:service-categories"
	keyICDCodes    = "ref:icd-codes"
	keyRoles       = "ref:roles"
)

// ReferenceKeys lists every cached dictionary.
var ReferenceKeys = []string{keySpecialties, keyCategories, keyICDCodes, keyRoles}

// cached serves key from store, loading and storing it on a miss. Cache
// failures are logged and never fail the read.
func cached[T any](ctx context.Context, store cache.Store, log *logrus.Logger, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var value T
	if store != nil {
		found, err := store.Get(ctx, key, &value)
		if err != nil {
			log.Warnf("Failed to read %s from cache: %+v", key, err)
		} else if found {
			return value, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if store != nil {
		if err := store.Set(ctx, key, value, ttl); err != nil {
			log.Warnf("Failed to write %s to cache: %+v", key, err)
		}
	}
	return value, nil
}
