package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldUser      = "user"
	FieldTxType    = "tx_type"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldPocket    = "pocket"
	FieldBalance   = "balance"
	FieldCount     = "count"
	FieldBackend   = "backend"
	FieldActivity  = "activity"
	FieldExchange  = "exchange"
	FieldQueue     = "queue"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentAccounts = "accounts"
	ComponentLedger   = "ledger"
	ComponentWorker   = "worker"
	ComponentBackend  = "backend"
)

// Operations defines standard operation names
const (
	OpRegister    = "register"
	OpLogin       = "login"
	OpLogout      = "logout"
	OpDelete      = "delete"
	OpPersist     = "persist"
	OpTransaction = "transaction"
	OpSavings     = "savings"
	OpGoal        = "goal"
	OpBudget      = "budget"
	OpExpense     = "expense"
	OpReset       = "reset"
	OpPocket      = "pocket"
	OpConsume     = "consume"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
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

// WithUser adds the user name field
func (f LogFields) WithUser(name string) LogFields {
	f[FieldUser] = name
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(txType, amount, category string) LogFields {
	f[FieldTxType] = txType
	f[FieldAmount] = amount
	if category != "" {
		f[FieldCategory] = category
	}
	return f
}

// With adds an arbitrary field
func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
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
