package log

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldError          = "error"
	FieldOperation      = "operation"
	FieldSubscriptionID = "subscription_id"
	FieldName           = "name"
	FieldBillingCycle   = "billing_cycle"
	FieldCategory       = "category"
	FieldStorageKey     = "storage_key"
	FieldBackend        = "backend"
	FieldCount          = "count"
	FieldBytes          = "bytes"
	FieldPath           = "path"
	FieldCurrency       = "currency"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStore   = "store"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentConfig  = "config"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpAdd      = "add"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpDeleteAt = "delete_at"
	OpMigrate  = "migrate"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithStorageKey adds the blob key
func (f LogFields) WithStorageKey(key string) LogFields {
	f[FieldStorageKey] = key
	return f
}

// WithSubscription adds subscription-related fields
func (f LogFields) WithSubscription(id, name, cycle, category string) LogFields {
	f[FieldSubscriptionID] = id
	f[FieldName] = name
	f[FieldBillingCycle] = cycle
	f[FieldCategory] = category
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
