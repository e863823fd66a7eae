package mdreport

import (
	"errors"

	"github.com/alnah/go-mdreport/internal/assets"
	"github.com/alnah/go-mdreport/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound

	// ErrDocumentRender indicates the page template failed to execute.
	ErrDocumentRender = pipeline.ErrDocumentRender
)
