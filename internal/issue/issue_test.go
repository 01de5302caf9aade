package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_DropsMalformed(t *testing.T) {
	in := []Issue{
		{ID: "1", Kind: KindGrammar, ErrorText: "go", CorrectionText: "goes", SentenceText: "He go."},
		{ID: "", Kind: KindGrammar, ErrorText: "was", SentenceText: "We was."},
		{ID: "3", Kind: KindSpelling, ErrorText: "   ", SentenceText: "blank after trim"},
	}

	out := Sanitize(in)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)
}

func TestSanitize_NormalizesFields(t *testing.T) {
	in := []Issue{{
		ID:           "1",
		Kind:         KindGrammar,
		ErrorText:    " go\u200b ",
		SentenceText: " He go to school. ",
		ContextText:  "He go\u200c to",
	}}

	out := Sanitize(in)
	require.Len(t, out, 1)
	assert.Equal(t, "go", out[0].ErrorText)
	assert.Equal(t, "He go to school.", out[0].SentenceText)
	assert.Equal(t, "He go to", out[0].ContextText)
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	in := []Issue{{ID: "1", ErrorText: " padded ", SentenceText: "s"}}
	Sanitize(in)
	assert.Equal(t, " padded ", in[0].ErrorText)
}

func TestHasCorrection(t *testing.T) {
	assert.True(t, Issue{CorrectionText: "goes"}.HasCorrection())
	assert.False(t, Issue{Kind: KindAI}.HasCorrection())
}

func TestDecodeCheck(t *testing.T) {
	body := []byte(`{
		"issues": [
			{"errorId": "e1", "type": "grammar", "error": "go", "correct": "goes",
			 "sentence": "He go to school.", "context": "He go to"},
			{"errorId": "e2", "type": "spelling", "error": "stor", "correct": "store",
			 "sentence": "We went to the stor."}
		]
	}`)

	issues, err := DecodeCheck(body)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "e1", issues[0].ID)
	assert.Equal(t, KindGrammar, issues[0].Kind)
	assert.Equal(t, "goes", issues[0].CorrectionText)
	assert.Equal(t, "He go to", issues[0].ContextText)
	assert.Equal(t, "", issues[1].ContextText)
}

func TestDecodeCheck_BadJSON(t *testing.T) {
	_, err := DecodeCheck([]byte("{not json"))
	assert.Error(t, err)
}

func TestDecodeDetect_KeepsFlaggedSentencesOnly(t *testing.T) {
	body := []byte(`{
		"sentences": [
			{"sentence": "A human wrote this.", "perplexity": 91.2, "highlight_sentence_for_ai": false},
			{"sentence": "This sentence is generated.", "perplexity": 12.4, "highlight_sentence_for_ai": true}
		]
	}`)

	issues, err := DecodeDetect(body)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "ai-1", issues[0].ID)
	assert.Equal(t, KindAI, issues[0].Kind)
	assert.Equal(t, "This sentence is generated.", issues[0].ErrorText)
	assert.Equal(t, issues[0].ErrorText, issues[0].SentenceText)
	assert.False(t, issues[0].HasCorrection())
}

func TestDecodeDetect_Empty(t *testing.T) {
	issues, err := DecodeDetect([]byte(`{"sentences": []}`))
	require.NoError(t, err)
	assert.Empty(t, issues)
}
