// Package catalog holds the session's read-only platform and payload
// lists, fetched once at startup from the simulator API.
package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/involve-space/stratosim-station/events"
	"github.com/involve-space/stratosim-station/simapi"
)

// Cache is the immutable-once-loaded asset catalog. The two fetches are
// independent and may complete in any order; a failed fetch leaves the
// corresponding list empty, is logged and surfaces as an operator
// event. There is no retry.
type Cache struct {
	mutex     sync.Mutex
	platforms []simapi.Platform
	payloads  []simapi.Payload
}

// Fetcher is the part of the simulator client the cache needs.
type Fetcher interface {
	Platforms(ctx context.Context) ([]simapi.Platform, error)
	Payloads(ctx context.Context) ([]simapi.Payload, error)
}

func NewCache() *Cache {
	return &Cache{}
}

// Load starts the two catalog fetches. Each invokes onLoaded (if set)
// after its list is stored, so the caller can auto-select defaults.
func (c *Cache) Load(client Fetcher, onLoaded func()) {
	go func() {
		platforms, err := client.Platforms(context.Background())
		if err != nil {
			log.Printf("Failed to load platform catalog: %v", err)
			logLoadFailed()
			return
		}
		c.mutex.Lock()
		c.platforms = platforms
		c.mutex.Unlock()
		log.Printf("Loaded %d platforms", len(platforms))
		if onLoaded != nil {
			onLoaded()
		}
	}()

	go func() {
		payloads, err := client.Payloads(context.Background())
		if err != nil {
			log.Printf("Failed to load payload catalog: %v", err)
			logLoadFailed()
			return
		}
		c.mutex.Lock()
		c.payloads = payloads
		c.mutex.Unlock()
		log.Printf("Loaded %d payloads", len(payloads))
		if onLoaded != nil {
			onLoaded()
		}
	}()
}

func logLoadFailed() {
	events.LogEvent(events.Event{
		Type:      "catalog_load_failed",
		Source:    "Catalog",
		Timestamp: time.Now(),
	})
}

// Platforms returns the platform list in server order.
func (c *Cache) Platforms() []simapi.Platform {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.platforms
}

// Payloads returns the payload list in server order.
func (c *Cache) Payloads() []simapi.Payload {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.payloads
}

// Platform looks up a platform by id.
func (c *Cache) Platform(id int64) *simapi.Platform {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i := range c.platforms {
		if c.platforms[i].ID == id {
			return &c.platforms[i]
		}
	}
	return nil
}

// Payload looks up a payload by id.
func (c *Cache) Payload(id int64) *simapi.Payload {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i := range c.payloads {
		if c.payloads[i].ID == id {
			return &c.payloads[i]
		}
	}
	return nil
}

// HasPlatform reports whether id references a catalog platform.
func (c *Cache) HasPlatform(id int64) bool {
	return c.Platform(id) != nil
}

// HasPayload reports whether id references a catalog payload.
func (c *Cache) HasPayload(id int64) bool {
	return c.Payload(id) != nil
}

// FirstPlatformID returns the first platform's id, or 0 if none loaded.
func (c *Cache) FirstPlatformID() int64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.platforms) == 0 {
		return 0
	}
	return c.platforms[0].ID
}

// FirstPayloadID returns the first payload's id, or 0 if none loaded.
func (c *Cache) FirstPayloadID() int64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.payloads) == 0 {
		return 0
	}
	return c.payloads[0].ID
}

// SetLists replaces both lists directly. Used by tests and by callers
// that already hold the catalog data.
func (c *Cache) SetLists(platforms []simapi.Platform, payloads []simapi.Payload) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.platforms = platforms
	c.payloads = payloads
}
