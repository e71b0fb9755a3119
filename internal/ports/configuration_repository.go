package ports

import (
	"context"

	"github.com/bnema/ssild/internal/domain"
)

type ConfigurationRepository interface {
	Load(ctx context.Context, key string) (domain.Configuration, error)
	Save(ctx context.Context, key string, cfg domain.Configuration) error
}
