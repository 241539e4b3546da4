// Package dictionary provides the word-lookup collaborators used by the
// spelling bee: an HTTP client, an offline word list, a SQL-backed memo and
// combinators to stack them.
package dictionary

import (
	"context"
	"errors"
	"time"
)

// Lookup answers whether a lowercase word exists. Implementations return an
// error only when they could not decide.
type Lookup interface {
	Exists(ctx context.Context, word string) (bool, error)
}

// Chain asks each lookup in order and stops at the first "exists".
// A definitive "no" from one link still lets later links answer. The chain
// fails only when no link said yes and at least one link errored.
type Chain []Lookup

func (c Chain) Exists(ctx context.Context, word string) (bool, error) {
	var errs []error
	for _, l := range c {
		ok, err := l.Exists(ctx, word)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, errors.Join(errs...)
}

// ObserveFunc receives the result and duration of every lookup.
type ObserveFunc func(source string, found bool, err error, took time.Duration)

// Observed reports every call on Next to Observe under Source.
type Observed struct {
	Source  string
	Next    Lookup
	Observe ObserveFunc
}

func (o Observed) Exists(ctx context.Context, word string) (bool, error) {
	start := time.Now()
	found, err := o.Next.Exists(ctx, word)
	if o.Observe != nil {
		o.Observe(o.Source, found, err, time.Since(start))
	}
	return found, err
}
