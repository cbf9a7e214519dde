// Package validate checks changed catalog entries against the controlled
// tag vocabulary and verifies that their links are reachable.
package validate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrnerf/paperlist/internal/catalog"
	"github.com/mrnerf/paperlist/internal/fetch"
)

const (
	// DefaultConcurrency bounds the link-check worker pool.
	DefaultConcurrency = 5

	// DefaultRequestDelay paces sequential checks on the same worker to
	// avoid tripping remote rate limits.
	DefaultRequestDelay = 1 * time.Second
)

// urlFields lists the link fields to check, in a stable order. The paper
// URL is required; the rest are checked only when present.
var urlFields = []struct {
	name     string
	required bool
	get      func(catalog.Record) string
}{
	{"paper", true, func(r catalog.Record) string { return r.Paper }},
	{"project_page", false, func(r catalog.Record) string { return r.ProjectPage }},
	{"code", false, func(r catalog.Record) string { return r.Code }},
	{"video", false, func(r catalog.Record) string { return r.Video }},
}

// ChangedEntries returns the records that are new or differ from the base
// snapshot, compared by id presence and full-record equality. Validation
// runs only against this subset to keep incremental cost bounded.
func ChangedEntries(current, base []catalog.Record) []catalog.Record {
	baseByID := make(map[string]catalog.Record, len(base))
	for _, r := range base {
		baseByID[r.ID] = r
	}

	var changed []catalog.Record
	for _, r := range current {
		old, ok := baseByID[r.ID]
		if !ok || !r.Equal(old) {
			changed = append(changed, r)
		}
	}
	return changed
}

// Validator checks entries against the vocabulary and link reachability.
type Validator struct {
	client      *fetch.Client
	concurrency int
	delay       time.Duration
	progress    func(format string, args ...any)
}

// Option configures a Validator.
type Option func(*Validator)

// WithClient sets the HTTP client used for link checks.
func WithClient(c *fetch.Client) Option {
	return func(v *Validator) { v.client = c }
}

// WithConcurrency sets the worker pool size.
func WithConcurrency(n int) Option {
	return func(v *Validator) { v.concurrency = n }
}

// WithRequestDelay sets the per-worker pacing delay.
func WithRequestDelay(d time.Duration) Option {
	return func(v *Validator) { v.delay = d }
}

// WithProgress sets a progress line sink (typically stderr).
func WithProgress(fn func(format string, args ...any)) Option {
	return func(v *Validator) { v.progress = fn }
}

// New creates a Validator with the default pool size and pacing.
func New(opts ...Option) *Validator {
	v := &Validator{
		client:      fetch.NewClient(),
		concurrency: DefaultConcurrency,
		delay:       DefaultRequestDelay,
		progress:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks every entry and returns all accumulated error strings.
// Individual failures never abort the run; each worker handles a disjoint
// entry and writes only to its own result slot.
func (v *Validator) Validate(ctx context.Context, entries []catalog.Record) []string {
	results := make([][]string, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			v.progress("validating %s\n", entry.ID)
			results[i] = v.validateEntry(ctx, entry)
			return nil
		})
	}
	g.Wait()

	var errs []string
	for _, r := range results {
		errs = append(errs, r...)
	}
	return errs
}

func (v *Validator) validateEntry(ctx context.Context, entry catalog.Record) []string {
	var errs []string

	if entry.ID == "" {
		return []string{"Entry missing ID"}
	}

	errs = append(errs, checkTags(entry)...)

	for _, f := range urlFields {
		url := f.get(entry)
		if url == "" {
			if f.required {
				errs = append(errs, fmt.Sprintf("Entry %s: %s URL is missing or empty", entry.ID, f.name))
			}
			continue
		}
		if msg := v.checkURL(ctx, url); msg != "" {
			errs = append(errs, fmt.Sprintf("Entry %s: %s %s", entry.ID, f.name, msg))
		}

		// Pace sequential requests on this worker.
		select {
		case <-time.After(v.delay):
		case <-ctx.Done():
			return errs
		}
	}

	return errs
}

// checkTags verifies the tag invariants: tags present, every descriptive
// tag in the vocabulary, and at least one non-year tag.
func checkTags(entry catalog.Record) []string {
	if len(entry.Tags) == 0 {
		return []string{fmt.Sprintf("Entry %s: No tags provided", entry.ID)}
	}

	var errs []string
	var invalid []string
	nonYear := 0
	for _, tag := range entry.Tags {
		if catalog.IsYearTag(tag) {
			continue
		}
		nonYear++
		if !IsAllowedTag(tag) {
			invalid = append(invalid, tag)
		}
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Sprintf("Entry %s: Invalid tags: [%s]", entry.ID, strings.Join(invalid, ", ")))
	}
	if nonYear == 0 {
		errs = append(errs, fmt.Sprintf("Entry %s: Must have at least one non-Year tag", entry.ID))
	}
	return errs
}

// checkURL returns an error description for an unreachable URL, or "" when
// the URL is fine. 2xx and redirect statuses count as reachable.
func (v *Validator) checkURL(ctx context.Context, url string) string {
	status, err := v.client.Check(ctx, url)
	if err != nil {
		if fetch.IsTimeout(err) {
			return "URL timed out"
		}
		return fmt.Sprintf("Error accessing URL: %v", err)
	}
	if reachable(status) {
		return ""
	}
	return fmt.Sprintf("URL returns %d", status)
}

func reachable(status int) bool {
	if status >= 200 && status < 300 {
		return true
	}
	switch status {
	case 301, 302, 303, 307, 308:
		return true
	}
	return false
}
