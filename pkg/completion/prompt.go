package completion

// BuildPrompt joins the preamble and the raw input line with a single space.
// The line is kept as read, including any trailing newline.
func BuildPrompt(preamble, line string) string {
	return preamble + " " + line
}

// NewRequest builds a fresh request for one turn.
func NewRequest(preamble, line string, maxTokens int) Request {
	return Request{
		Prompt:    BuildPrompt(preamble, line),
		MaxTokens: maxTokens,
	}
}
