package swap

import (
	"context"

	"golang.org/x/net/html"

	"careerflow/internal/dom"
)

// Event is a document-level event delivered to the controller. The controller
// registers one handler per event type at the document root and routes by
// attribute presence, not per-element closures.
type Event interface {
	isEvent()
}

// SubmitEvent is a form submission. Files carry the payloads for the form's
// file inputs; a headless document has no filesystem behind them.
type SubmitEvent struct {
	Form  *html.Node
	Files []dom.FilePayload
}

// ClickEvent is a click anywhere in the document. The controller resolves the
// trigger by walking to the nearest self-or-ancestor carrying both marker
// attributes.
type ClickEvent struct {
	Node *html.Node
}

func (SubmitEvent) isEvent() {}
func (ClickEvent) isEvent()  {}

// Dispatch routes an event to its handler. Unknown event types are skipped.
func (c *Controller) Dispatch(ctx context.Context, ev Event) Outcome {
	switch ev := ev.(type) {
	case SubmitEvent:
		return c.HandleSubmit(ctx, ev)
	case ClickEvent:
		return c.HandleClick(ctx, ev)
	default:
		return skipped()
	}
}
