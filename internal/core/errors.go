package core

import "errors"

var (
	// ErrDimensionMismatch means two vectors of unequal length were compared.
	// With a dimension-stable embedder this indicates corrupted data.
	ErrDimensionMismatch = errors.New("vectors must have the same length")

	// ErrEmbedding means the embedding collaborator returned no vector.
	ErrEmbedding = errors.New("no embedding generated")

	// ErrGeneration means the generation collaborator returned no content.
	ErrGeneration = errors.New("no response generated")

	// ErrLocationNotFound is the expected outcome for unknown locations.
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidExpression means nothing evaluable remained after sanitizing.
	ErrInvalidExpression = errors.New("invalid mathematical expression")
)
