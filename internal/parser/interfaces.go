package parser

import (
	"github.com/toyz/decorator/internal/attempt"
	"github.com/toyz/decorator/internal/models"
)

// MetadataReader extracts decorator metadata from a single source unit
type MetadataReader interface {
	Read(name, src string) attempt.Attempt[*models.ClassMetadata]
}
