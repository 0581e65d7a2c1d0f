// Package usecase exposes the application facade: one method per
// business operation, each owning its validation, cache invalidation
// and event sequencing.
package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yeshua-aguilar/comicflix-catalog/blog"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/manifest"
)

// Service coordinates the post repository, the manifest and the event
// bus. Callers are expected to hand it the cached repository variants;
// the service itself is oblivious to caching.
type Service struct {
	posts    blog.PostRepository
	manifest manifest.Repository
	bus      *catalog.Bus
}

// New builds the facade over the given collaborators.
func New(posts blog.PostRepository, man manifest.Repository, bus *catalog.Bus) *Service {
	return &Service{posts: posts, manifest: man, bus: bus}
}

// refreshManifest drops the manifest snapshots and rebuilds the
// aggregate after a successful write. The rebuild is best effort: the
// post collection is already correct, so a failure here is logged and
// the next rebuild repairs the manifest.
func (s *Service) refreshManifest(ctx context.Context, includeGenres bool) {
	s.manifest.InvalidateComicsListCache()
	if includeGenres {
		s.manifest.InvalidateGenresCache()
	}
	if err := s.manifest.UpdateManifest(ctx); err != nil {
		log.Error().Err(err).Msg("manifest rebuild failed")
	}
}
