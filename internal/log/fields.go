package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldLedgerPath = "ledger_path"
	FieldRecords    = "records"
	FieldTextLen    = "text_len"
	FieldImage      = "image"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentOCR     = "ocr"
	ComponentExtract = "extract"
	ComponentInsight = "insight"
	ComponentLedger  = "ledger"
	ComponentCharts  = "charts"
	ComponentImport  = "import"
)
