package positions

// Kind identifies the direction of a ledger transaction.
type Kind string

const (
	// Buy is a purchase of shares, cash flowing out.
	Buy Kind = "Buy"
	// Sell is a disposal of shares, cash flowing in.
	Sell Kind = "Sell"
)

// savingsPlanLabel is the raw broker label for a recurring purchase.
// It is a Buy in every respect except the name.
const savingsPlanLabel = "Savings plan"

// statusExecuted is the only ledger row status that counts toward positions.
const statusExecuted = "Executed"

// NormalizeKind maps a raw ledger label to a Kind. "Savings plan" becomes Buy;
// any other label is passed through verbatim and rejected later by the
// aggregation engine, so that a malformed ledger fails loudly instead of
// being silently dropped at ingest.
func NormalizeKind(raw string) Kind {
	if raw == savingsPlanLabel {
		return Buy
	}
	return Kind(raw)
}

// Transaction is one executed ledger row. It is immutable: the aggregation
// pipeline only ever reads it.
type Transaction struct {
	ISIN        string
	Kind        Kind
	Shares      Quantity // magnitude only, direction comes from Kind
	Price       Money    // per-share execution price as reported by the broker
	Amount      Money    // signed cash flow: conventionally negative for a Buy, positive for a Sell
	Description string   // security name as reported by the broker, may be empty
}
