package errors

// Error code constants returned to the client alongside a human-readable
// message. Format: CATEGORY_SPECIFIC_DETAIL.

const (
	// Configuration (fatal at startup, should never reach a client)
	ConfigMissingValue = "CONFIG_MISSING_VALUE"

	// Connections to the tabular store or object storage
	ConnectionSheetsFailed  = "CONNECTION_SHEETS_FAILED"
	ConnectionStorageFailed = "CONNECTION_STORAGE_FAILED"

	// Validation (user-correctable; all failures reported together)
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidDate  = "VALIDATION_INVALID_DATE"

	// Catalog
	CatalogEmptyName   = "CATALOG_EMPTY_NAME"
	CatalogReadFailed  = "CATALOG_READ_FAILED"
	CatalogWriteFailed = "CATALOG_WRITE_FAILED"

	// Image ingestion
	ImageInvalidFileType  = "IMAGE_INVALID_FILE_TYPE"
	ImageProcessingFailed = "IMAGE_PROCESSING_FAILED"

	// Submission pipeline
	UploadFailed = "UPLOAD_FAILED"
	AppendFailed = "APPEND_FAILED"

	// Internal
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
