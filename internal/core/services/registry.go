package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ingest-cli/internal/connectors/dropbox"
	"github.com/custodia-labs/ingest-cli/internal/connectors/gcs"
	"github.com/custodia-labs/ingest-cli/internal/connectors/s3"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// StoreFactory builds an ObjectStore from backend access parameters
// (credentials, endpoints). Keys are backend-specific.
type StoreFactory func(ctx context.Context, access map[string]string) (driven.ObjectStore, error)

// Registry maps recognized schemes to object-store backends. The scheme set
// is closed but extensible: a new backend registers its scheme here and in
// domain.SupportedSchemes.
type Registry struct {
	factories map[string]StoreFactory
}

// NewRegistry creates a registry with the built-in backends.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]StoreFactory)}
	r.registerBuiltins()
	return r
}

func (r *Registry) registerBuiltins() {
	s3Factory := func(ctx context.Context, access map[string]string) (driven.ObjectStore, error) {
		return s3.New(ctx, s3.Options{
			Region:          access["region"],
			Endpoint:        access["endpoint"],
			AccessKeyID:     access["access_key_id"],
			SecretAccessKey: access["secret_access_key"],
			SessionToken:    access["session_token"],
			Anonymous:       access["anonymous"] == "true",
		})
	}
	r.Register("s3", s3Factory)
	r.Register("s3a", s3Factory)

	gcsFactory := func(ctx context.Context, access map[string]string) (driven.ObjectStore, error) {
		return gcs.New(ctx, gcs.Options{
			CredentialsFile: access["credentials_file"],
			Anonymous:       access["anonymous"] == "true",
		})
	}
	r.Register("gs", gcsFactory)
	r.Register("gcs", gcsFactory)

	r.Register("dropbox", func(_ context.Context, access map[string]string) (driven.ObjectStore, error) {
		return dropbox.New(dropbox.Options{Token: access["token"]})
	})
}

// Register adds or replaces the factory for a scheme.
func (r *Registry) Register(scheme string, factory StoreFactory) {
	r.factories[scheme] = factory
}

// Schemes returns the schemes with a registered backend.
func (r *Registry) Schemes() []string {
	schemes := make([]string, 0, len(r.factories))
	for _, s := range domain.SupportedSchemes {
		if _, ok := r.factories[s]; ok {
			schemes = append(schemes, s)
		}
	}
	return schemes
}

// Store builds the ObjectStore for a scheme.
// Returns domain.ErrUnsupportedScheme when no backend is registered, which
// is distinct from an unrecognized scheme (a location error).
func (r *Registry) Store(ctx context.Context, scheme string, access map[string]string) (driven.ObjectStore, error) {
	factory, ok := r.factories[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedScheme, scheme)
	}
	return factory(ctx, access)
}
