package ports

import (
	"context"

	"github.com/bnema/ssild/internal/domain"
)

type VoiceCatalog interface {
	ListVoices(ctx context.Context) ([]domain.Voice, error)
}
