package typeload

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/models"
	"github.com/toyz/decorator/internal/utils"
)

// ChainLoader asks each loader in turn; the first that resolves the type
// wins. Only type-not-found failures move on to the next loader.
type ChainLoader struct {
	loaders []TypeLoader
	logger  *zap.Logger
}

var _ TypeLoader = (*ChainLoader)(nil)

// NewChainLoader creates a loader trying loaders in order
func NewChainLoader(logger *zap.Logger, loaders ...TypeLoader) *ChainLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainLoader{loaders: loaders, logger: logger}
}

// Load returns the surface from the first loader that knows qualifiedName
func (c *ChainLoader) Load(ctx context.Context, qualifiedName string) (*models.TypeSurface, error) {
	var last error
	for i, loader := range c.loaders {
		surface, err := loader.Load(ctx, qualifiedName)
		if err == nil {
			return surface, nil
		}
		if !errors.HasCode(err, errors.TypeResolutionErrorCode) {
			return nil, err
		}
		c.logger.Debug("type loader missed",
			zap.String(logFieldType, qualifiedName),
			zap.String(logFieldLoader, fmt.Sprintf("%d:%T", i, loader)))
		last = err
	}
	return nil, errors.NewTypeNotFoundError(qualifiedName, last)
}

// CachingLoader memoizes the surfaces of another loader by name. Failures
// are not remembered.
type CachingLoader struct {
	next     TypeLoader
	surfaces *utils.Cache[string, *models.TypeSurface]
}

var _ TypeLoader = (*CachingLoader)(nil)

// NewCachingLoader wraps next with a per-name cache
func NewCachingLoader(next TypeLoader) *CachingLoader {
	return &CachingLoader{
		next:     next,
		surfaces: utils.NewCache[string, *models.TypeSurface](),
	}
}

// Load returns the cached surface of qualifiedName, loading it on first use
func (c *CachingLoader) Load(ctx context.Context, qualifiedName string) (*models.TypeSurface, error) {
	return c.surfaces.GetOrLoad(qualifiedName, func() (*models.TypeSurface, error) {
		return c.next.Load(ctx, qualifiedName)
	})
}

// Cached returns how many surfaces are held
func (c *CachingLoader) Cached() int {
	return c.surfaces.Size()
}
