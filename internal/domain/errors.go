package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrAnalysisNotFound    = errors.New("analysis not found")
	ErrAnalysisNotReady    = errors.New("analysis has not completed yet")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrTextExtraction      = errors.New("text extraction failed")
	ErrEmptyQuery          = errors.New("search query is empty")
)
