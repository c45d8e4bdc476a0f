package seed

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Service is the subset of the bookmark service the seeder needs.
type Service interface {
	ListAll(ctx context.Context) ([]domain.Bookmark, error)
	Create(ctx context.Context, in domain.Fields) (domain.Bookmark, error)
}

// Seeder fills an empty store from a seed file.
type Seeder struct {
	loader  *Loader
	service Service
	logger  logger.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(filePath string, service Service, log logger.Logger) *Seeder {
	return &Seeder{
		loader:  NewLoader(filePath),
		service: service,
		logger:  log,
	}
}

// Run creates every valid entry of the seed file when the store holds no
// bookmark yet. Entries rejected by validation are logged and skipped.
// It returns the number of bookmarks created.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	existing, err := s.service.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect store before seeding: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("store not empty, skipping seed",
			logger.Int("existing", len(existing)))
		return 0, nil
	}

	file, err := s.loader.Load()
	if err != nil {
		return 0, err
	}

	created := 0
	for i, entry := range file {
		b, err := s.service.Create(ctx, entry.Fields())
		if err != nil {
			if domain.IsValidation(err) {
				s.logger.Warn("skipping invalid seed entry",
					logger.Int("index", i),
					logger.Error(err))
				continue
			}
			return created, fmt.Errorf("failed to seed entry %d: %w", i, err)
		}
		s.logger.Debug("seeded bookmark",
			logger.Int64("id", b.ID),
			logger.String("title", b.Title))
		created++
	}

	s.logger.Info("seed completed",
		logger.Int("created", created),
		logger.Int("skipped", len(file)-created))
	return created, nil
}
