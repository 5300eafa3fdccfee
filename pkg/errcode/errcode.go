package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Vegetation input errors
	VegReadError
	VegColumnError

	// Authoritative plants table errors
	PlantsFetchError
	PlantsParseError
	PlantsColumnError
	PlantsEmptyError

	// Output errors
	OutputFormatError
	OutputWriteError

	// Debug store errors
	DebugStoreError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaCollationError

	// Export errors
	ExportNoTableError
	ExportError

	// Metrics errors
	MetricsWriteError

	// Conversion errors
	ConvertCancelledError
	AuditError
)
