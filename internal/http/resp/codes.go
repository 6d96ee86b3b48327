package resp

// Machine-readable codes carried in error and status bodies.
const (
	CodeBadRequest         = "bad_request"
	CodeValidation         = "validation_error"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeNoRecipients       = "no_recipients"
	CodeResolutionFailed   = "recipient_resolution_failed"
	CodeTableMissing       = "table_missing"
	CodeWriteFailed        = "write_failed"
	CodeInternalError      = "internal_error"
	CodeStreamUnsupported  = "stream_unsupported"
	CodeQueued             = "queued"
	CodeOK                 = "ok"
	CodeAlreadySynced      = "already_synced"
	CodeWebhookUnsupported = "unrecognized_payload"
)
