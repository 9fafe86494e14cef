package generator

import "github.com/toyz/decorator/internal/models"

// DecoratorGenerator synthesizes the forwarding implementation of a decorator declaration
type DecoratorGenerator interface {
	Synthesize(meta *models.ClassMetadata, surface *models.TypeSurface) (*models.GeneratedUnit, error)
}
