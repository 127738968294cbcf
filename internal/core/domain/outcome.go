package domain

type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
	OperationUpdate Operation = "update"
)

type Reason string

const (
	ReasonStockExceeded Reason = "stock_exceeded"
	ReasonNotFound      Reason = "not_found"
	ReasonUnexpected    Reason = "unexpected"
)

// User-facing notification messages.
const (
	MessageStockExceeded = "Requested amount is out of stock"
	MessageAddFailed     = "Failed to add product"
	MessageRemoveFailed  = "Failed to remove product"
	MessageUpdateFailed  = "Failed to update product amount"
)

// Outcome reports the result of a cart operation. A zero Reason with
// Applied false means the call was a no-op.
type Outcome struct {
	Operation Operation `json:"operation"`
	ProductID int       `json:"product_id"`
	Applied   bool      `json:"applied"`
	Reason    Reason    `json:"reason,omitempty"`
	Message   string    `json:"message,omitempty"`
	Err       error     `json:"-"`
}

func (o Outcome) Failed() bool {
	return o.Reason != ""
}

// FailureMessage maps an operation and failure reason to the message shown
// to the user.
func FailureMessage(op Operation, reason Reason) string {
	if reason == ReasonStockExceeded {
		return MessageStockExceeded
	}
	switch op {
	case OperationAdd:
		return MessageAddFailed
	case OperationRemove:
		return MessageRemoveFailed
	default:
		return MessageUpdateFailed
	}
}
