package log

// Common field names for structured logging
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
	FieldOperation  = "operation"
	FieldTrack      = "track"
	FieldMessageID  = "message_id"
	FieldCount      = "count"
)

// Components
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentEngine    = "engine"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
	ComponentTUI       = "tui"
)

// Operations
const (
	OpParse    = "parse"
	OpValidate = "validate"
	OpFilter   = "filter"
	OpSummary  = "summary"
	OpReturns  = "returns"
	OpCompare  = "compare"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// Fields is a builder for structured log attributes
type Fields map[string]any

// NewFields creates an empty field set
func NewFields() Fields {
	return make(Fields)
}

// WithRequestID adds the request id
func (f Fields) WithRequestID(requestID string) Fields {
	f[FieldRequestID] = requestID
	return f
}

// WithError adds the error text when err is non-nil
func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds the operation name
func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

// WithHTTP adds request and response fields
func (f Fields) WithHTTP(method, path string, status int, durationMs int64) Fields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldStatusCode] = status
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts the fields to slog key/value pairs
func (f Fields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
