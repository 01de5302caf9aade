// internal/issue/wire.go
package issue

import (
	"encoding/json"
	"fmt"
)

// checkResponse is the grammar endpoint's wire shape.
type checkResponse struct {
	Issues []Issue `json:"issues"`
}

// detectResponse is the AI-detector endpoint's wire shape. Sentences are
// scored individually; only flagged ones become issues.
type detectResponse struct {
	Sentences []detectedSentence `json:"sentences"`
}

type detectedSentence struct {
	Sentence   string  `json:"sentence"`
	Perplexity float64 `json:"perplexity"`
	Highlight  bool    `json:"highlight_sentence_for_ai"`
}

// DecodeCheck parses a grammar-check response body into issues.
func DecodeCheck(body []byte) ([]Issue, error) {
	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode check response: %w", err)
	}
	return resp.Issues, nil
}

// DecodeDetect parses a detector response body into issues. Each flagged
// sentence becomes a detector-only issue: the sentence itself is the flagged
// text, there is no correction, and the ID is derived from the sentence's
// position in the response so repeated detection runs correlate.
func DecodeDetect(body []byte) ([]Issue, error) {
	var resp detectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode detect response: %w", err)
	}

	issues := make([]Issue, 0, len(resp.Sentences))
	for idx, s := range resp.Sentences {
		if !s.Highlight {
			continue
		}
		issues = append(issues, Issue{
			ID:           fmt.Sprintf("ai-%d", idx),
			Kind:         KindAI,
			ErrorText:    s.Sentence,
			SentenceText: s.Sentence,
		})
	}
	return issues, nil
}
