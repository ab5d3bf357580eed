package diaclass

// Quadrant is one of the four Diátaxis documentation categories.
type Quadrant string

// Quadrant constants.
const (
	QuadrantExplanation Quadrant = "explanation"
	QuadrantTutorial    Quadrant = "tutorial"
	QuadrantHowTo       Quadrant = "how_to"
	QuadrantReference   Quadrant = "reference"
)

// Quadrants returns all quadrants in canonical order.
func Quadrants() []Quadrant {
	return []Quadrant{QuadrantExplanation, QuadrantTutorial, QuadrantHowTo, QuadrantReference}
}

// IsValid reports whether q is one of the four known quadrants.
func (q Quadrant) IsValid() bool {
	switch q {
	case QuadrantExplanation, QuadrantTutorial, QuadrantHowTo, QuadrantReference:
		return true
	}
	return false
}

// Classification is a validated per-document classification. Percentages
// are in [0, 100] and are not required to sum to 100.
type Classification struct {
	Dominant    Quadrant `json:"dominant"`
	Explanation int      `json:"explanation"`
	Tutorial    int      `json:"tutorial"`
	HowTo       int      `json:"how_to"`
	Reference   int      `json:"reference"`
}

// Status identifies which variant a Result holds.
type Status string

// Status constants.
const (
	StatusSuccess        Status = "success"
	StatusParseFailure   Status = "parse_failure"
	StatusRequestFailure Status = "request_failure"
)

// Result is the outcome of classifying one document. Exactly one Result is
// recorded per document reference.
type Result struct {
	Status Status `json:"status"`

	// Classification is set on success.
	Classification *Classification `json:"classification,omitempty"`

	// RawResponse is the provider output, kept for diagnosis on parse failure.
	RawResponse string `json:"rawResponse,omitempty"`

	// Reason describes a failure.
	Reason string `json:"reason,omitempty"`

	// Code is the application error code of a request failure.
	Code string `json:"code,omitempty"`

	// Truncated is set when content was cut to the character budget.
	Truncated bool `json:"truncated,omitempty"`

	// Cached is set when the response came from the response cache.
	Cached bool `json:"cached,omitempty"`
}

// Success returns a successful result.
func Success(c *Classification) *Result {
	return &Result{Status: StatusSuccess, Classification: c}
}

// ParseFailure returns a result for provider output that could not be interpreted.
func ParseFailure(raw, reason string) *Result {
	return &Result{Status: StatusParseFailure, RawResponse: raw, Reason: reason}
}

// RequestFailure returns a result for a document whose content or response
// could not be obtained.
func RequestFailure(err error) *Result {
	return &Result{Status: StatusRequestFailure, Code: ErrorCode(err), Reason: ErrorMessage(err)}
}

// OK reports whether the result holds a classification.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusSuccess
}
