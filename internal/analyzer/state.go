package analyzer

import "github.com/sozercan/listing-lens/apimodels"

// RequestState is what a page view currently shows. It is exactly one of
// Idle, Loading, Succeeded or Failed; switch on it with a type switch.
type RequestState interface {
	// Phase names the variant, e.g. for logs and the JSON API.
	Phase() string

	isRequestState()
}

// Idle is the state of a view before its first submission.
type Idle struct{}

// Loading is the state while a submission is outstanding.
type Loading struct {
	Query string
}

// Succeeded holds the analysis returned for the latest submission.
type Succeeded struct {
	Query  string
	Result *apimodels.AnalyzeResponse
}

// Failed holds a user-facing message for the latest submission.
type Failed struct {
	Query   string
	Kind    FailureKind
	Message string
}

func (Idle) Phase() string      { return "idle" }
func (Loading) Phase() string   { return "loading" }
func (Succeeded) Phase() string { return "succeeded" }
func (Failed) Phase() string    { return "failed" }

func (Idle) isRequestState()      {}
func (Loading) isRequestState()   {}
func (Succeeded) isRequestState() {}
func (Failed) isRequestState()    {}

// FailureKind classifies why a submission failed.
type FailureKind int

const (
	// FailureValidation means the query was rejected before any network activity.
	FailureValidation FailureKind = iota + 1
	// FailureTimeout means the analysis API did not answer in time.
	FailureTimeout
	// FailureTransport means the analysis API could not be reached.
	FailureTransport
	// FailureServer means the analysis API answered with an error or an unusable body.
	FailureServer
)

func (k FailureKind) String() string {
	switch k {
	case FailureValidation:
		return "validation"
	case FailureTimeout:
		return "timeout"
	case FailureTransport:
		return "transport"
	case FailureServer:
		return "server"
	default:
		return "unknown"
	}
}
