// Package typeload resolves a qualified Java type name to the reflective
// surface the synthesizer forwards: its type parameters, supertypes and
// methods, inherited ones included.
package typeload

import (
	"context"

	"github.com/toyz/decorator/internal/models"
)

// TypeLoader resolves decorated types. A type that cannot be found is
// reported with errors.TypeResolutionErrorCode.
type TypeLoader interface {
	Load(ctx context.Context, qualifiedName string) (*models.TypeSurface, error)
}

// ObjectType is the implicit root of every class and interface
const ObjectType = "java.lang.Object"

const (
	logFieldType   = "type"
	logFieldSource = "source"
	logFieldLoader = "loader"
)
