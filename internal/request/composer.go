package request

import (
	"context"
	"strings"
)

// Phase is the composer's state.
type Phase int

const (
	// Idle means nothing has been generated since start or the last clear.
	Idle Phase = iota
	// HasOutput means a request text is ready to copy.
	HasOutput
)

func (p Phase) String() string {
	switch p {
	case HasOutput:
		return "has-output"
	default:
		return "idle"
	}
}

// Composer holds a draft and the text generated from it.
type Composer struct {
	Title  string
	Draft  Draft
	output string
	phase  Phase
}

// NewComposer returns an idle composer for the hub named title.
func NewComposer(title string) *Composer {
	return &Composer{Title: title}
}

// Phase returns the current state.
func (c *Composer) Phase() Phase { return c.phase }

// Output returns the last generated text, or "" when idle.
func (c *Composer) Output() string { return c.output }

// SetDraft replaces the draft fields without regenerating.
func (c *Composer) SetDraft(d Draft) { c.Draft = d }

// Generate renders the current draft and moves to HasOutput.
func (c *Composer) Generate() string {
	c.output = Generate(c.Title, c.Draft)
	c.phase = HasOutput
	return c.output
}

// Copy hands the generated text to cb. It does nothing when there is no
// output. Errors from cb are returned as-is.
func (c *Composer) Copy(ctx context.Context, cb Clipboard) (bool, error) {
	if strings.TrimSpace(c.output) == "" {
		return false, nil
	}
	if err := cb.WriteText(ctx, c.output); err != nil {
		return false, err
	}
	return true, nil
}

// Clear resets the draft and output and returns to Idle.
func (c *Composer) Clear() {
	c.Draft = Draft{}
	c.output = ""
	c.phase = Idle
}
