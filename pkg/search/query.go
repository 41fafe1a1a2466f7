package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the shortest query that starts a search
const MinQueryLength = 2

const (
	MessageKeepTyping      = "Keep typing your search criteria ..."
	MessageNoResults       = "No Results found matching %s"
	MessageToolUnavailable = "fd is not installed (tried fd and fdfind)"
)

// Item is one rendered row
type Item struct {
	Name       string
	Icon       string
	OnEnter    Action
	OnAltEnter Action
	Candidate  *Candidate
}

// Handler is the keyword-query entry point shared by every host
type Handler struct {
	dispatcher *Dispatcher
	appIcon    string
	onError    func(title, message string)
}

// NewHandler creates a handler. appIcon is shown on prompt and message rows;
// onError, when set, is called for failures the user should know about.
func NewHandler(d *Dispatcher, appIcon string, onError func(title, message string)) *Handler {
	return &Handler{dispatcher: d, appIcon: appIcon, onError: onError}
}

// OnQuery renders the rows for a query typed after keyword.
// The only error returned is ErrSuperseded; callers drop those rows.
func (h *Handler) OnQuery(ctx context.Context, keyword, rawInput string, prefs Preferences) ([]Item, error) {
	return h.OnQueryGen(ctx, 0, keyword, rawInput, prefs)
}

// OnQueryGen is OnQuery for hosts that number their own queries.
// See Dispatcher.SearchGen.
func (h *Handler) OnQueryGen(ctx context.Context, gen uint64, keyword, rawInput string, prefs Preferences) ([]Item, error) {
	query := strings.TrimSpace(rawInput)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []Item{h.message(MessageKeepTyping, DoNothingAction())}, nil
	}

	mode := prefs.ModeForKeyword(keyword)
	list, err := h.dispatcher.SearchGen(ctx, gen, query, mode, prefs)
	switch {
	case errors.Is(err, ErrSuperseded):
		return nil, err
	case errors.Is(err, ErrToolUnavailable):
		if h.onError != nil {
			h.onError("qf", err.Error())
		}
		return []Item{h.message(MessageToolUnavailable, HideWindowAction())}, nil
	case err != nil:
		return []Item{h.message(fmt.Sprintf(MessageNoResults, query), HideWindowAction())}, nil
	}

	if len(list.Candidates) == 0 {
		h.dispatcher.transition(list, Rendered)
		return []Item{h.message(fmt.Sprintf(MessageNoResults, query), HideWindowAction())}, nil
	}

	items := RenderItems(list.Candidates, prefs)
	h.dispatcher.transition(list, Rendered)
	return items, nil
}

// RenderItems binds actions to at most MaxResults candidates
func RenderItems(candidates []Candidate, prefs Preferences) []Item {
	if len(candidates) > MaxResults {
		candidates = candidates[:MaxResults]
	}
	items := make([]Item, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		items = append(items, Item{
			Name:       c.Name,
			Icon:       c.Icon,
			OnEnter:    OpenAction(c.Path),
			OnAltEnter: TerminalAction(prefs.TerminalEmulator, c.Dir()),
			Candidate:  c,
		})
	}
	return items
}

func (h *Handler) message(name string, action Action) Item {
	return Item{
		Name:       name,
		Icon:       h.appIcon,
		OnEnter:    action,
		OnAltEnter: action,
	}
}
