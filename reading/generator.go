// Package reading turns a symbol request into a fortune text that the user
// has not seen anything too similar to recently.
package reading

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fal-engine/catalog"
	"fal-engine/config"
	apperrors "fal-engine/errors"
	"fal-engine/guard"
	"fal-engine/utils"

	"go.uber.org/zap"
)

// Outcome is the terminal state of a generation.
type Outcome string

const (
	Accepted         Outcome = "accepted"
	FallbackAccepted Outcome = "fallback"
)

// Request is a validated-on-entry generation request. Lang is used as given:
// an empty code renders Turkish fragments with the generic closing line.
type Request struct {
	UserID      string
	Symbols     []string
	CultureMode bool
	Lang        string
	Region      string
}

// Result is the delivered text and how it was reached.
type Result struct {
	Text          string
	Outcome       Outcome
	Attempts      int
	ComboReversed bool
	Permutation   string
}

// Lookup is the symbol vocabulary the generator renders from.
type Lookup interface {
	Fragment(symbol, lang string) (string, bool)
	CultureNotes(symbol, region string) []catalog.Note
}

// Generator runs the attempt loop against shared per-user stores.
type Generator struct {
	cfg      *config.Config
	lookup   Lookup
	history  *guard.HistoryStore
	cooldown *guard.TemplateCooldown
	seeds    *guard.SeedGenerator
	locks    *guard.KeyedMutex
	logger   *zap.Logger
	now      func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator wires a generator. The stores may be shared with other
// components such as the cleanup service.
func NewGenerator(cfg *config.Config, lookup Lookup, history *guard.HistoryStore, cooldown *guard.TemplateCooldown, seeds *guard.SeedGenerator, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		lookup:   lookup,
		history:  history,
		cooldown: cooldown,
		seeds:    seeds,
		locks:    guard.NewKeyedMutex(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate checks the required fields and fills the default region.
func (r *Request) Validate() error {
	if utils.IsBlank(r.UserID) {
		return apperrors.WrapError(apperrors.ErrInvalidInput, "missing user_id")
	}
	if len(r.Symbols) == 0 {
		return apperrors.WrapError(apperrors.ErrInvalidInput, "missing symbols")
	}
	if r.Region == "" {
		r.Region = catalog.GlobalRegion
	}
	return nil
}

// Generate produces a reading for req and records it in the user's history.
// Exhausting every attempt is not an error: the language's fallback text is
// returned instead. Only validation failures and internal faults return errors,
// and neither leaves anything recorded.
func (g *Generator) Generate(ctx context.Context, req Request) (res *Result, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unlock := g.locks.Lock(req.UserID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Reading generation panicked",
				zap.String("user_id", req.UserID),
				zap.Any("panic", r))
			res = nil
			err = apperrors.WrapErrorf(apperrors.ErrInternal, "generation failed: %v", r)
		}
	}()

	now := g.now()
	perm := utils.PermutationKey(req.Symbols)

	order := make([]string, len(req.Symbols))
	copy(order, req.Symbols)

	reversed := g.history.IsExactComboRecent(req.UserID, perm, now)
	if reversed {
		reverse(order)
	}

	marks := newPendingMarks()
	seed := g.seeds.DailySeed(req.UserID, now)

	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		notes := guard.StreamFrom(seed + uint32(attempt))
		text := g.render(req, order, notes, marks, now)

		fp := guard.Fingerprint(text)
		if !g.history.IsTooSimilar(req.UserID, fp) {
			g.commit(req.UserID, perm, fp, marks, now)
			g.logger.Debug("Reading accepted",
				zap.String("user_id", req.UserID),
				zap.String("permutation", perm),
				zap.Int("attempt", attempt))
			return &Result{
				Text:          text,
				Outcome:       Accepted,
				Attempts:      attempt + 1,
				ComboReversed: reversed,
				Permutation:   perm,
			}, nil
		}
		reverse(order)
	}

	text := catalog.FallbackText(req.Lang)
	g.commit(req.UserID, perm, guard.Fingerprint(text), marks, now)
	g.logger.Info("All attempts too similar, returning fallback",
		zap.String("user_id", req.UserID),
		zap.String("permutation", perm),
		zap.Int("attempts", g.cfg.MaxAttempts))

	return &Result{
		Text:          text,
		Outcome:       FallbackAccepted,
		Attempts:      g.cfg.MaxAttempts,
		ComboReversed: reversed,
		Permutation:   perm,
	}, nil
}

// render assembles one candidate text. Templates that are off cooldown get
// staged in marks whether or not the candidate is later accepted.
func (g *Generator) render(req Request, order []string, notes *guard.Stream, marks *pendingMarks, now time.Time) string {
	var b strings.Builder
	b.WriteString(catalog.OpeningLine)

	for _, sym := range order {
		b.WriteString("\n• ")

		fragment, ok := g.lookup.Fragment(sym, req.Lang)
		if !ok {
			g.logger.Debug("Unresolved symbol", zap.String("symbol", sym))
			b.WriteString(catalog.UnresolvedFragment(sym))
			continue
		}
		b.WriteString(fragment)

		if req.CultureMode {
			if note := pickNote(g.lookup.CultureNotes(sym, req.Region), req.Lang, notes); note != "" {
				fmt.Fprintf(&b, " (%s)", note)
			}
		}

		tplID := guard.TemplateID(sym, req.Lang)
		if !marks.has(tplID) && !g.cooldown.IsOnCooldown(req.UserID, tplID, now) {
			marks.add(tplID)
		}
	}

	b.WriteString("\n")
	b.WriteString(catalog.ClosingLine(req.Lang))
	return b.String()
}

// commit writes the reading and every staged template mark.
func (g *Generator) commit(userID, perm string, fp uint64, marks *pendingMarks, now time.Time) {
	for _, tplID := range marks.ids {
		g.cooldown.MarkUsed(userID, tplID, now)
	}
	g.history.Record(userID, guard.Reading{
		CreatedAt:         now,
		TextHash:          fp,
		SymbolPermutation: perm,
	})
}

func pickNote(notes []catalog.Note, lang string, rng *guard.Stream) string {
	if len(notes) == 0 {
		return ""
	}
	return notes[rng.Intn(len(notes))].Text(lang)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// pendingMarks holds template ids to mark once the request produces a text.
type pendingMarks struct {
	ids  []string
	seen map[string]struct{}
}

func newPendingMarks() *pendingMarks {
	return &pendingMarks{seen: make(map[string]struct{})}
}

func (p *pendingMarks) has(id string) bool {
	_, ok := p.seen[id]
	return ok
}

func (p *pendingMarks) add(id string) {
	p.seen[id] = struct{}{}
	p.ids = append(p.ids, id)
}
