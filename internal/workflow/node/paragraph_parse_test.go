package node

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParagraphs_Structured(t *testing.T) {
	raw := "---EXPLICACAO---\nEscolhi um tom sombrio.\n\n---PARAGRAFOS---\nPrimeiro.\n\nSegundo.\n\nTerceiro.\n\nQuarto."

	res := ParseParagraphs(raw)
	assert.Equal(t, FormatStructured, res.Format)
	assert.Equal(t, "Escolhi um tom sombrio.", res.Explanation)
	assert.Equal(t, []string{"Primeiro.", "Segundo.", "Terceiro.", "Quarto."}, res.Paragraphs)
}

func TestParseParagraphs_MarkersAreCaseInsensitive(t *testing.T) {
	res := ParseParagraphs("---explicacao--- why ---Paragrafos--- one\n\ntwo")
	assert.Equal(t, FormatStructured, res.Format)
	assert.Equal(t, "why", res.Explanation)
	assert.Equal(t, []string{"one", "two"}, res.Paragraphs)
}

func TestParseParagraphs_Unstructured(t *testing.T) {
	res := ParseParagraphs("Um.\n\nDois.\n \t\nTrês.")
	assert.Equal(t, FormatUnstructured, res.Format)
	assert.Empty(t, res.Explanation)
	assert.Equal(t, []string{"Um.", "Dois.", "Três."}, res.Paragraphs)
}

func TestParseParagraphs_MissingParagraphsMarker(t *testing.T) {
	raw := "---EXPLICACAO---\nsó explicação\n\noutro bloco"
	res := ParseParagraphs(raw)
	assert.Equal(t, FormatUnstructured, res.Format)
	assert.Empty(t, res.Explanation)
	assert.Equal(t, []string{"---EXPLICACAO---\nsó explicação", "outro bloco"}, res.Paragraphs)
}

func TestParseParagraphs_MarkersOutOfOrder(t *testing.T) {
	raw := "---PARAGRAFOS---\nA\n\n---EXPLICACAO---\nB"
	res := ParseParagraphs(raw)
	assert.Equal(t, FormatUnstructured, res.Format)
	assert.Empty(t, res.Explanation)
	assert.Equal(t, []string{"---PARAGRAFOS---\nA", "---EXPLICACAO---\nB"}, res.Paragraphs)
}

func TestParseParagraphs_CapsAtFour(t *testing.T) {
	raw := strings.Join([]string{"1", "2", "3", "4", "5", "6"}, "\n\n")
	res := ParseParagraphs(raw)
	assert.Len(t, res.Paragraphs, MaxParagraphs)
	assert.Equal(t, []string{"1", "2", "3", "4"}, res.Paragraphs)
}

func TestParseParagraphs_EmptyAndBlank(t *testing.T) {
	assert.Empty(t, ParseParagraphs("").Paragraphs)
	assert.Empty(t, ParseParagraphs("   \n\n  \n").Paragraphs)

	res := ParseParagraphs("---EXPLICACAO--- x ---PARAGRAFOS---   ")
	assert.Equal(t, FormatStructured, res.Format)
	assert.Equal(t, "x", res.Explanation)
	assert.Empty(t, res.Paragraphs)
}

func TestParseParagraphs_CRLF(t *testing.T) {
	res := ParseParagraphs("a\r\n\r\nb")
	assert.Equal(t, []string{"a", "b"}, res.Paragraphs)
}

func TestParseParagraphs_SingleNewlineKeepsParagraph(t *testing.T) {
	res := ParseParagraphs("linha um\nlinha dois\n\noutro")
	assert.Equal(t, []string{"linha um\nlinha dois", "outro"}, res.Paragraphs)
}

func TestResponseFormat_String(t *testing.T) {
	assert.Equal(t, "structured", FormatStructured.String())
	assert.Equal(t, "unstructured", FormatUnstructured.String())
}

func TestParseParagraphs_Idempotent(t *testing.T) {
	inputs := []string{
		"---EXPLICACAO---\nPorque sim.\n---PARAGRAFOS---\nP1.\n\nP2.\n\nP3.\n\nP4.",
		"P1.\n\nP2.",
		"",
	}
	for _, raw := range inputs {
		first := ParseParagraphs(raw)
		second := ParseParagraphs(raw)
		assert.Equal(t, first, second, raw)
	}
}
