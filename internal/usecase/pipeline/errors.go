package pipeline

import "errors"

var (
	ErrAssetNotFound   = errors.New("pipeline: asset not found")
	ErrVersionNotFound = errors.New("pipeline: version not found")
	ErrVersionMismatch = errors.New("pipeline: version does not belong to asset")

	ErrVersionObjectMissing = errors.New("pipeline: version object missing from storage")
)
