package catalog

import (
	"fmt"

	"github.com/Domenick1991/pestbooking/config"
	"github.com/Domenick1991/pestbooking/internal/domain"
)

// Catalog is the read-only lookup of service packs.
type Catalog struct {
	packs    map[string]domain.Pack
	order    []string
	fallback string
}

func New(packs []config.PackConfig, defaultSlug string) (*Catalog, error) {
	c := &Catalog{
		packs:    make(map[string]domain.Pack, len(packs)),
		fallback: defaultSlug,
	}
	for _, p := range packs {
		if _, dup := c.packs[p.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate pack %q", p.Slug)
		}
		c.packs[p.Slug] = domain.Pack{
			Slug:     p.Slug,
			Name:     p.Name,
			Duration: p.Duration,
			Details:  append([]string(nil), p.Details...),
		}
		c.order = append(c.order, p.Slug)
	}
	if _, ok := c.packs[defaultSlug]; !ok {
		return nil, fmt.Errorf("catalog: default pack %q not found", defaultSlug)
	}
	return c, nil
}

// Lookup returns the pack for slug, or the default pack when slug is
// empty or unknown.
func (c *Catalog) Lookup(slug string) domain.Pack {
	if p, ok := c.Get(slug); ok {
		return p
	}
	p, _ := c.Get(c.fallback)
	return p
}

func (c *Catalog) Get(slug string) (domain.Pack, bool) {
	p, ok := c.packs[slug]
	if !ok {
		return domain.Pack{}, false
	}
	p.Details = append([]string(nil), p.Details...)
	return p, true
}

func (c *Catalog) All() []domain.Pack {
	out := make([]domain.Pack, 0, len(c.order))
	for _, slug := range c.order {
		p, _ := c.Get(slug)
		out = append(out, p)
	}
	return out
}
