package registryclient

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// MinQueryLength is the shortest input that triggers a lookup.
const MinQueryLength = 3

// ErrStale is returned for a lookup overtaken by a newer one.
var ErrStale = errors.New("registryclient: stale autocomplete response")

// SuggestFunc fetches suggestions for q.
type SuggestFunc func(ctx context.Context, q string) ([]string, error)

// Autocompleter applies the search-box rules on top of a SuggestFunc: input
// shorter than MinQueryLength yields no suggestions without a request, and
// every call takes a sequence number so that a response arriving after a newer
// call was issued is dropped with ErrStale. Safe for concurrent use.
type Autocompleter struct {
	suggest SuggestFunc
	seq     atomic.Uint64
}

func NewAutocompleter(suggest SuggestFunc) *Autocompleter {
	return &Autocompleter{suggest: suggest}
}

// DrugAutocompleter returns an Autocompleter over DrugAutocomplete.
func (c *Client) DrugAutocompleter() *Autocompleter {
	return NewAutocompleter(c.DrugAutocomplete)
}

// Lookup returns suggestions for input.
func (a *Autocompleter) Lookup(ctx context.Context, input string) ([]string, error) {
	seq := a.seq.Add(1)

	q := strings.TrimSpace(input)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return []string{}, nil
	}

	res, err := a.suggest(ctx, q)
	if a.seq.Load() != seq {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
