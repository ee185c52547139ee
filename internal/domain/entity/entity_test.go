package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNextOrderIndex(t *testing.T) {
	assert.Equal(t, 0, NextOrderIndex(nil))
	assert.Equal(t, 1, NextOrderIndex(intPtr(0)))
	assert.Equal(t, 3, NextOrderIndex(intPtr(2)))
}

func TestWorkStatus_IsValid(t *testing.T) {
	for _, s := range []WorkStatus{WorkStatusDraft, WorkStatusInProgress, WorkStatusReview, WorkStatusDone} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, WorkStatus("finished").IsValid())
	assert.False(t, WorkStatus("").IsValid())
}

func TestNewPartAndChapter_StartAsDraft(t *testing.T) {
	p := NewPart("proj", "Parte 1", 0)
	assert.Equal(t, WorkStatusDraft, p.Status)
	assert.NotEmpty(t, p.ID)

	c := NewChapter(p.ID, "Capítulo 1", 2)
	assert.Equal(t, WorkStatusDraft, c.Status)
	assert.Equal(t, 2, c.OrderIndex)
	assert.NotEqual(t, p.ID, c.ID)
}

func TestJoinApproved_SkipsPendingAndSortsByOrder(t *testing.T) {
	now := time.Now()
	paragraphs := []*Paragraph{
		NewParagraph("ch", "third", 5, &now),
		NewParagraph("ch", "pending", 1, nil),
		NewParagraph("ch", "first", 0, &now),
		NewParagraph("ch", "second", 3, &now),
	}

	assert.Equal(t, "first\n\nsecond\n\nthird", JoinApproved(paragraphs))
	assert.Equal(t, "", JoinApproved(nil))
	assert.Equal(t, "", JoinApproved([]*Paragraph{NewParagraph("ch", "x", 0, nil)}))
}

func TestParagraph_Approve(t *testing.T) {
	p := NewParagraph("ch", "text", 0, nil)
	assert.False(t, p.IsApproved())

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p.Approve(at)
	assert.True(t, p.IsApproved())
	assert.Equal(t, at, *p.ApprovedAt)
}

func TestSettings_Defaults(t *testing.T) {
	var nilSettings *Settings
	assert.Equal(t, "", nilSettings.Template())
	assert.Equal(t, DefaultTTSVoice, nilSettings.Voice())

	s := DefaultSettings()
	assert.Equal(t, SettingsID, s.ID)
	assert.Equal(t, "pm_alex", s.Voice())

	tpl := "custom {{PROJECT_CONTEXT}}"
	s.PromptTemplate = &tpl
	s.TTSVoice = "pf_dora"
	assert.Equal(t, tpl, s.Template())
	assert.Equal(t, "pf_dora", s.Voice())
}

func TestDocumentBlock(t *testing.T) {
	assert.Equal(t, "--- notes.md ---\nbody", DocumentBlock("notes.md", "body"))
}
