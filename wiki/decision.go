package wiki

// DecisionKind says how a create-page request should be answered.
type DecisionKind int

const (
	// DecisionRedirect sends the user to TargetURL.
	DecisionRedirect DecisionKind = iota + 1
	// DecisionAlreadyExists shows a notice with EditURL and RetryURL links.
	DecisionAlreadyExists
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionRedirect:
		return "redirect"
	case DecisionAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// RoutingDecision is the outcome of routing one create-page request.
// Title is nil when nothing was submitted.
type RoutingDecision struct {
	Kind      DecisionKind `json:"kind"`
	Title     *Title       `json:"-"`
	TargetURL string       `json:"target_url,omitempty"`
	EditURL   string       `json:"edit_url,omitempty"`
	RetryURL  string       `json:"retry_url,omitempty"`
}
