package cache

import (
	"time"

	c "github.com/patrickmn/go-cache"
	"github.com/votecard/cardflow/model"
)

// DefinitionCache fronts metadata reads. Definitions are immutable
// configuration, so entries only leave on explicit invalidation.
type DefinitionCache struct {
	cache *c.Cache
}

func NewDefinitionCache() *DefinitionCache {
	return &DefinitionCache{
		cache: c.New(c.NoExpiration, 10*time.Minute),
	}
}

func (ch *DefinitionCache) Put(def *model.WorkflowDefinition) {
	ch.cache.Set(def.Name, def, c.NoExpiration)
}

func (ch *DefinitionCache) Get(name string) (*model.WorkflowDefinition, bool) {
	cached, found := ch.cache.Get(name)
	if !found {
		return nil, false
	}
	def, ok := cached.(*model.WorkflowDefinition)
	return def, ok
}

func (ch *DefinitionCache) Invalidate(name string) {
	ch.cache.Delete(name)
}
