package catalog

import (
	"testing"

	"github.com/Domenick1991/pestbooking/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cfg := config.Default()
	c, err := New(cfg.Packs, cfg.Booking.DefaultPack)
	require.NoError(t, err)
	return c
}

func TestLookup(t *testing.T) {
	c := newTestCatalog(t)

	testCases := []struct {
		slug     string
		wantSlug string
		wantName string
	}{
		{"punaises-de-lit", "punaises-de-lit", "Pack traitement punaises de lit"},
		{"guepes-frelons", "guepes-frelons", "Pack traitement nid de guêpes"},
		{"", "rongeur", "Pack traitement rongeur"},
		{"fourmis", "rongeur", "Pack traitement rongeur"},
	}
	for _, tc := range testCases {
		t.Run(tc.slug, func(t *testing.T) {
			p := c.Lookup(tc.slug)
			assert.Equal(t, tc.wantSlug, p.Slug)
			assert.Equal(t, tc.wantName, p.Name)
		})
	}
}

func TestGet_Strict(t *testing.T) {
	c := newTestCatalog(t)

	p, ok := c.Get("blattes-cafards")
	assert.True(t, ok)
	assert.Equal(t, "3h", p.Duration)
	assert.Len(t, p.Details, 6)

	_, ok = c.Get("fourmis")
	assert.False(t, ok)
}

func TestAll_KeepsOrderAndIsolation(t *testing.T) {
	c := newTestCatalog(t)

	all := c.All()
	require.Len(t, all, 4)
	assert.Equal(t, "rongeur", all[0].Slug)
	assert.Equal(t, "guepes-frelons", all[3].Slug)

	all[0].Details[0] = "changed"
	p, _ := c.Get("rongeur")
	assert.Equal(t, "Inspection complète des lieux", p.Details[0])
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]config.PackConfig{{Slug: "a"}, {Slug: "a"}}, "a")
	assert.ErrorContains(t, err, "duplicate pack")

	_, err = New([]config.PackConfig{{Slug: "a"}}, "b")
	assert.ErrorContains(t, err, "default pack")
}
