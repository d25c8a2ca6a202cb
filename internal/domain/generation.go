package domain

// Fixed literals shared by the prompt, the validator and the fallback template.
const (
	PaymentProvider = "ucandoo"
	PaymentPhrase   = "Du buchst jetzt – und zahlst später ganz flexibel mit ucandoo"
	PaymentLine     = "💳 Und wie immer bei uns: " + PaymentPhrase + "."

	PointerGlyph = "👉"
	SparkleGlyph = "✨"
	ArrowGlyph   = "➡️"
	CardGlyph    = "💳"
)

// CTALabels are the three call-to-action labels every post carries, each on its own pointer line.
var CTALabels = [3]string{"Jetzt buchen", "Ratenrechner", "Reisebüro finden"}

// Sampling holds the scalar controls passed to the generation endpoint.
type Sampling struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GenerationRequest is a role-tagged prompt plus its sampling parameters.
type GenerationRequest struct {
	Instructions string   // system role
	UserContent  string   // user role
	Sampling     Sampling // per request
}

// Outcome tells callers which path of the generation loop produced the text.
type Outcome string

const (
	OutcomeAccepted    Outcome = "accepted"             // first or revalidated retry passed
	OutcomeUnvalidated Outcome = "accepted_unvalidated" // retry result accepted without re-check
	OutcomeInvalid     Outcome = "invalid"              // retry re-checked and still failing
	OutcomeFallback    Outcome = "fallback"             // deterministic template
)

// Generation is the result of one orchestrated generation.
type Generation struct {
	Text        string  `json:"text"`
	Outcome     Outcome `json:"outcome"`
	Attempts    int     `json:"attempts"`
	FailedCheck string  `json:"failedCheck,omitempty"`
}

// Validator check identifiers, reported with failed generations.
const (
	CheckRequiredLiteral  = "required_literal"
	CheckPrice            = "price"
	CheckStructure        = "structure"
	CheckFeatureGrounding = "feature_grounding"
	CheckForbiddenContent = "forbidden_content"
	CheckMinLines         = "min_lines"
)
