package ports

// InterpretationResolver returns reading text for a body in a sign.
// Lookup never fails: unknown pairs get a generic sentence.
type InterpretationResolver interface {
	Lookup(body, sign string) string
}
