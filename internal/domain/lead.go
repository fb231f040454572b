package domain

// Lead status values as understood by the backend.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// LeadSnapshot is the full form + cart state sent on every lead save.
// Each save replaces the previous one server-side; nothing is diffed.
type LeadSnapshot struct {
	Form      CheckoutForm
	Source    string
	Items     []CartLine
	CartTotal int64
}
