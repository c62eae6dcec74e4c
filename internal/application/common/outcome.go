package common

// Reason is a stable machine-readable code explaining a command outcome
type Reason string

const (
	ReasonOK                    Reason = "OK"
	ReasonPartial               Reason = "PARTIAL"
	ReasonNotFound              Reason = "NOT_FOUND"
	ReasonInsufficientFunds     Reason = "INSUFFICIENT_FUNDS"
	ReasonInsufficientMaterials Reason = "INSUFFICIENT_MATERIALS"
	ReasonInsufficientStock     Reason = "INSUFFICIENT_STOCK"
	ReasonWarehouseFull         Reason = "WAREHOUSE_FULL"
	ReasonNoOutputSpace         Reason = "NO_OUTPUT_SPACE"
	ReasonMachineBusy           Reason = "MACHINE_BUSY"
	ReasonHallFull              Reason = "HALL_FULL"
	ReasonInvalidInput          Reason = "INVALID_INPUT"
)

// Outcome is the structured result of every simulation command: a success
// flag, the quantity and money amount actually affected, a reason code, and
// a human-readable message for the presentation layer's log. Expected
// business conditions (insufficient funds, full warehouse) are outcomes, not
// errors.
type Outcome struct {
	OK       bool
	Reason   Reason
	Quantity int
	Amount   int
	Message  string
}

// Success builds a fully-successful outcome
func Success(message string, quantity, amount int) Outcome {
	return Outcome{OK: true, Reason: ReasonOK, Quantity: quantity, Amount: amount, Message: message}
}

// Partial builds a successful outcome that affected less than requested
func Partial(message string, quantity, amount int) Outcome {
	return Outcome{OK: true, Reason: ReasonPartial, Quantity: quantity, Amount: amount, Message: message}
}

// Failure builds a failed outcome; nothing was affected
func Failure(reason Reason, message string) Outcome {
	return Outcome{OK: false, Reason: reason, Message: message}
}
