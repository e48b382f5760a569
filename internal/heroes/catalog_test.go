package heroes

import (
	"testing"

	"dota-stats/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(&config.Config{HeroImageBaseURL: "https://cdn.example/heroes/"})
	require.NoError(t, err)
	return c
}

func TestLookup(t *testing.T) {
	c := newCatalog(t)

	tests := map[string]struct {
		id        int64
		wantName  string
		wantImage string
	}{
		"anti-mage":    {id: 1, wantName: "antimage", wantImage: "https://cdn.example/heroes/npc_dota_hero_antimage.png"},
		"shadow fiend": {id: 11, wantName: "nevermore", wantImage: "https://cdn.example/heroes/npc_dota_hero_nevermore.png"},
		"invoker":      {id: 74, wantName: "invoker", wantImage: "https://cdn.example/heroes/npc_dota_hero_invoker.png"},
		"unknown":      {id: 9999, wantName: "default", wantImage: "https://cdn.example/heroes/npc_dota_hero_default.png"},
		"gap id":       {id: 24, wantName: "default", wantImage: "https://cdn.example/heroes/npc_dota_hero_default.png"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			gotName, gotImage := c.Lookup(tc.id)
			assert.Equal(t, tc.wantName, gotName)
			assert.Equal(t, tc.wantImage, gotImage)
		})
	}
}

func TestIDsSorted(t *testing.T) {
	c := newCatalog(t)
	ids := c.IDs()
	require.Len(t, ids, c.Len())
	assert.Equal(t, int64(1), ids[0])
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestParseKeysRejectsBadID(t *testing.T) {
	_, err := parseKeys([]byte(`{"abc": "axe.png"}`))
	assert.Error(t, err)
}
