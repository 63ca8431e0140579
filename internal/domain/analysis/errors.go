package analysis

import "errors"

// ErrUnsupportedFileType indicates the declared MIME type is neither
// application/pdf nor an image/* subtype. Fatal, client-input error.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrEmptyExtraction indicates extraction produced no usable text
// (e.g. a scanned PDF without a text layer). Fatal, no record is created.
var ErrEmptyExtraction = errors.New("no text could be extracted")

// ErrAugmentationFailed indicates the model call or response parsing failed.
// The pipeline downgrades it to a sentinel suggestion; it never reaches callers.
var ErrAugmentationFailed = errors.New("ai augmentation failed")

// ErrPersistenceFailed indicates the store rejected the write. Fatal.
var ErrPersistenceFailed = errors.New("failed to persist analysis")
