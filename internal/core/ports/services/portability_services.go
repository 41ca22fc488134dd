package services

import (
	"context"

	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// LegacyExportFormat selects the output of the legacy flat-record export.
type LegacyExportFormat string

const (
	LegacyFormatJSON LegacyExportFormat = "json"
	LegacyFormatCSV  LegacyExportFormat = "csv"
	LegacyFormatXLSX LegacyExportFormat = "xlsx"
)

// PortabilitySvcFacade implements the import/export pipeline. Import is
// two-phase: ValidateImport parses and shape-checks the uploaded document
// without touching state; CommitImport applies the destructive full-replace
// merge and must only be called after explicit user confirmation.
type PortabilitySvcFacade interface {
	// ExportData renders the full state in the portable format, with expense
	// category/account references denormalized to names.
	ExportData(ctx context.Context) (*dto.PortableAppData, error)
	// ExportLegacy renders expenses as flat legacy records in the requested
	// format, returning the file content and a suggested filename.
	ExportLegacy(ctx context.Context, format LegacyExportFormat) (content []byte, filename string, err error)
	// ValidateImport parses raw JSON and validates every section, returning
	// a *apperrors.SchemaValidationError listing the failed sections when
	// any present section is malformed.
	ValidateImport(ctx context.Context, raw []byte) (*dto.PortableAppData, error)
	// CommitImport replaces state with the validated payload per the merge
	// policy, then persists. All-or-nothing.
	CommitImport(ctx context.Context, payload *dto.PortableAppData) error
}
