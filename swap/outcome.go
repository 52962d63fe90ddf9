package swap

// Status classifies what a dispatched event did to the document.
type Status string

const (
	// StatusSkipped: the event did not qualify for interception; default
	// browser behavior would proceed.
	StatusSkipped Status = "skipped"
	// StatusApplied: the swap target was replaced wholesale by the matching
	// node from an HTML response.
	StatusApplied Status = "applied"
	// StatusInnerApplied: the swap target's inner content was replaced from a
	// JSON-carried fragment.
	StatusInnerApplied Status = "inner_applied"
	// StatusStatusOnly: the JSON response carried no fragment, so the swap was
	// a no-op, but the import-count status message was still updated.
	StatusStatusOnly Status = "status_only"
	// StatusNoMatch: the target selector matched no (or more than one) element
	// on one side; the document was left untouched.
	StatusNoMatch Status = "no_match"
	// StatusFetchFailed: the network request was rejected or errored.
	StatusFetchFailed Status = "fetch_failed"
	// StatusParseFailed: the response body could not be decoded.
	StatusParseFailed Status = "parse_failed"
)

// Outcome is the explicit result of handling one event. Failures never escape
// the controller; they are logged and reported here so callers and tests can
// observe the failure branch without scraping logs.
type Outcome struct {
	// Intercepted reports whether the controller claimed the event. False
	// means default navigation/submission should proceed.
	Intercepted bool
	Status      Status
	// Imported carries the import count from a JSON response, when present.
	Imported int
	Err      error
}

func skipped() Outcome {
	return Outcome{Intercepted: false, Status: StatusSkipped}
}

func failed(status Status, err error) Outcome {
	return Outcome{Intercepted: true, Status: status, Err: err}
}
