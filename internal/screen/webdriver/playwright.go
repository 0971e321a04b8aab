// Package webdriver implements C1 (ScreenSource) against a live
// Playwright page, grounded on the teacher's internal/tools/browser
// package (github.com/playwright-community/playwright-go, a pooled
// playwright.Page wrapping Goto/Click/Fill/Screenshot). Unlike the
// teacher's pool of disposable browser instances used as an on-demand
// tool, Source owns a single long-lived Page for the duration of one
// automation run and re-derives a Screen from its live DOM on every
// Capture, the way a mobile ScreenSource re-derives one from the device's
// accessibility tree.
package webdriver

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/haasonsaas/acc/internal/screen"
)

// interactiveSelector matches the element kinds ACC can act on: links,
// buttons, form controls, and anything wired with a click handler or
// ARIA button role.
const interactiveSelector = `a, button, input, textarea, select, [role="button"], [onclick]`

// Source captures a screen.Screen by querying a live page's interactive
// elements. It remembers the playwright.ElementHandle behind each index
// so a paired action/webdriver.Sink can resolve tap/type targets.
type Source struct {
	page     playwright.Page
	elements map[int]playwright.ElementHandle
}

// New builds a Source bound to an already-navigated Playwright page.
func New(page playwright.Page) *Source {
	return &Source{page: page, elements: make(map[int]playwright.ElementHandle)}
}

// Capture re-queries the page's interactive elements and builds a fresh
// screen.Screen, replacing any index->handle mapping from the previous
// capture. Traversal stops once maxElements visible elements have been
// collected and every label is truncated to maxTextLength runes (§4.1).
// A maxElements of 0 returns an empty Screen and clears the index->handle
// mapping, since there is nothing for a paired Sink to resolve.
func (s *Source) Capture(ctx context.Context, maxElements, maxTextLength int) (screen.Screen, error) {
	if maxElements < 0 {
		maxElements = 0
	}

	elements := make(map[int]playwright.ElementHandle)
	scrElements := make([]screen.ScreenElement, 0, maxElements)

	if maxElements > 0 {
		handles, err := s.page.QuerySelectorAll(interactiveSelector)
		if err != nil {
			return screen.Screen{}, fmt.Errorf("query interactive elements: %w", err)
		}

		for _, h := range handles {
			if len(scrElements) >= maxElements {
				break
			}
			visible, _ := h.IsVisible()
			if !visible {
				continue
			}
			idx := len(scrElements)

			tag, _ := h.GetProperty("tagName")
			tagName := ""
			if tag != nil {
				tagName, _ = tag.JSONValue().(string) // nolint:errcheck
			}

			label := elementLabel(h, maxTextLength)
			resourceID, _ := h.GetAttribute("id")
			box, _ := h.BoundingBox()
			cx, cy := 0, 0
			if box != nil {
				cx, cy = int(box.X+box.Width/2), int(box.Y+box.Height/2)
			}
			editable := tagName == "INPUT" || tagName == "TEXTAREA"

			scrElements = append(scrElements, screen.ScreenElement{
				Index:      idx,
				Label:      label,
				ResourceID: resourceID,
				ClassHint:  tagName,
				CenterX:    cx,
				CenterY:    cy,
				Clickable:  !editable,
				EditText:   editable,
			})
			elements[idx] = h
		}
	}
	s.elements = elements

	url := s.page.URL()

	return screen.NewScreen(url, scrElements), nil
}

// Lookup returns the element handle captured at index, if any.
func (s *Source) Lookup(index int) (playwright.ElementHandle, bool) {
	h, ok := s.elements[index]
	return h, ok
}

// Page exposes the underlying page for a paired Sink.
func (s *Source) Page() playwright.Page { return s.page }

func elementLabel(h playwright.ElementHandle, maxTextLength int) string {
	label := ""
	if text, err := h.TextContent(); err == nil && text != "" {
		label = text
	} else if ph, err := h.GetAttribute("placeholder"); err == nil && ph != "" {
		label = ph
	} else if aria, err := h.GetAttribute("aria-label"); err == nil && aria != "" {
		label = aria
	} else if val, err := h.GetAttribute("value"); err == nil && val != "" {
		label = val
	}

	if maxTextLength < 0 {
		maxTextLength = 0
	}
	r := []rune(label)
	if len(r) > maxTextLength {
		return string(r[:maxTextLength])
	}
	return label
}
