package spatial

const (
	ErrTypeInvalidBoundary = "invalid-boundary"
	ErrTypeInvalidDepth    = "invalid-depth"
	ErrTypeInvalidCellSize = "invalid-cell-size"
	ErrTypeMissingGeometry = "missing-geometry"
	ErrTypeBrokenInvariant = "broken-invariant"
)
