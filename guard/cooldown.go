package guard

import (
	"sync"
	"time"
)

// TemplateID names the phrasing a symbol renders with in a given language.
func TemplateID(symbol, lang string) string {
	return symbol + "_v1_" + lang
}

type cooldownKey struct {
	userID     string
	templateID string
}

// TemplateCooldown remembers when each user last received each template.
type TemplateCooldown struct {
	window time.Duration

	mu       sync.RWMutex
	lastUsed map[cooldownKey]time.Time
}

// NewTemplateCooldown creates a cooldown tracker with the given window.
func NewTemplateCooldown(window time.Duration) *TemplateCooldown {
	return &TemplateCooldown{
		window:   window,
		lastUsed: make(map[cooldownKey]time.Time),
	}
}

// IsOnCooldown reports whether the template was used for the user less than
// the cooldown window before now. Templates never used are not on cooldown.
func (c *TemplateCooldown) IsOnCooldown(userID, templateID string, now time.Time) bool {
	c.mu.RLock()
	last, ok := c.lastUsed[cooldownKey{userID, templateID}]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	return now.Sub(last) < c.window
}

// MarkUsed overwrites the template's last-use time for the user.
func (c *TemplateCooldown) MarkUsed(userID, templateID string, now time.Time) {
	c.mu.Lock()
	c.lastUsed[cooldownKey{userID, templateID}] = now
	c.mu.Unlock()
}

// LastUsed returns the recorded last-use time, if any.
func (c *TemplateCooldown) LastUsed(userID, templateID string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.lastUsed[cooldownKey{userID, templateID}]
	return t, ok
}

// Prune forgets records whose cooldown has lapsed at now and returns how
// many were dropped. A lapsed record and a missing one answer IsOnCooldown
// identically.
func (c *TemplateCooldown) Prune(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	pruned := 0
	for k, last := range c.lastUsed {
		if now.Sub(last) >= c.window {
			delete(c.lastUsed, k)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of tracked (user, template) pairs.
func (c *TemplateCooldown) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lastUsed)
}
