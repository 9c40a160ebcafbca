package completion

import (
	"encoding/json"
	"errors"
)

// ErrNoChoices is returned when a response carries an empty choices list.
var ErrNoChoices = errors.New("no completion available: response has no choices")

// Request is the body POSTed to the completion endpoint.
type Request struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

// Choice is one candidate completion.
type Choice struct {
	Text         string          `json:"text"`
	Index        int             `json:"index"`
	Logprobs     json.RawMessage `json:"logprobs,omitempty"`
	FinishReason string          `json:"finish_reason"`
}

// Response is the completion endpoint's reply. Only Choices is consumed.
type Response struct {
	ID      string   `json:"id,omitempty"`
	Object  string   `json:"object,omitempty"`
	Created int64    `json:"created,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
}

// FirstText returns the text of the first choice verbatim.
func (r Response) FirstText() (string, error) {
	if len(r.Choices) == 0 {
		return "", ErrNoChoices
	}
	return r.Choices[0].Text, nil
}

// wireResponse distinguishes a missing choices field from an empty one.
type wireResponse struct {
	ID      string    `json:"id"`
	Object  string    `json:"object"`
	Created int64     `json:"created"`
	Model   string    `json:"model"`
	Choices *[]Choice `json:"choices"`
}

// Decode parses a response body. A body without a choices field is malformed.
func Decode(data []byte) (Response, error) {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return Response{}, &DecodeError{Body: snippet(data), Err: err}
	}
	if wire.Choices == nil {
		return Response{}, &DecodeError{Body: snippet(data), Err: errors.New("missing choices field")}
	}
	return Response{
		ID:      wire.ID,
		Object:  wire.Object,
		Created: wire.Created,
		Model:   wire.Model,
		Choices: *wire.Choices,
	}, nil
}
