package errors

// Error is a constant-able error type. Storage and execution layers return
// these values (possibly wrapped with fmt.Errorf("...: %w")) and callers
// match them with the standard errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

// storage format and addressing
const (
	ErrSchemaMismatch   = Error("tuple schema does not match")
	ErrInvalidSlot      = Error("slot is out of range or not in use")
	ErrRecordNotOnPage  = Error("record id is absent or points to another page")
	ErrPageFull         = Error("no free slot on page")
	ErrCorruptPage      = Error("page bytes are malformed")
	ErrStorageIOFailure = Error("storage I/O failure")
)

// transaction layer
const (
	ErrTransactionAborted = Error("transaction aborted")
	ErrNoEvictablePage    = Error("all frames hold dirty pages")
)

// operator and iterator usage
const (
	ErrOperatorNotOpen      = Error("operator is not open")
	ErrOperatorAlreadyOpen  = Error("operator is already open")
	ErrNoSuchElement        = Error("no more tuples")
	ErrUnsupportedAggregate = Error("aggregate is not supported for this type")
)

// catalog and statistics lookups
const (
	ErrTableNotFound = Error("table not found")
	ErrTableExists   = Error("table already exists")
	ErrInvalidField  = Error("field index out of range")
)
