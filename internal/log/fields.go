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
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldFunction = "function"
	FieldPeriod   = "period"
	FieldCategory = "category"
	FieldQuery    = "query"
	FieldSymbol   = "symbol"
	FieldCurrency = "currency"
	FieldYear     = "year"
	FieldMonth    = "month"
	FieldCount    = "count"
	FieldSource   = "source"
	FieldFilePath = "file_path"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReports = "reports"
	ComponentViews   = "views"
	ComponentSearch  = "search"
	ComponentMarket  = "market"
	ComponentCache   = "cache"
	ComponentSource  = "source"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
)

// Operations defines standard operation names.
const (
	OpLoad     = "load"
	OpFilter   = "filter"
	OpGroup    = "group"
	OpFetch    = "fetch"
	OpRefresh  = "refresh"
	OpPersist  = "persist"
	OpPublish  = "publish"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
