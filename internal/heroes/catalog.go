package heroes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dota-stats/internal/config"
)

const DefaultImageKey = "default.png"

//go:embed heroes.json
var heroesJSON []byte

// Catalog maps hero ids to image keys such as "antimage.png".
type Catalog struct {
	baseURL string
	keys    map[int64]string
}

func NewCatalog(cfg *config.Config) (*Catalog, error) {
	keys, err := parseKeys(heroesJSON)
	if err != nil {
		return nil, err
	}
	return &Catalog{baseURL: strings.TrimRight(cfg.HeroImageBaseURL, "/"), keys: keys}, nil
}

func parseKeys(raw []byte) (map[int64]string, error) {
	var byID map[string]string
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("failed to decode hero catalog: %w", err)
	}
	keys := make(map[int64]string, len(byID))
	for k, v := range byID {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hero id %q: %w", k, err)
		}
		keys[id] = v
	}
	return keys, nil
}

// Lookup returns the hero's short name and image URL. Unknown ids resolve
// to the default image.
func (c *Catalog) Lookup(heroID int64) (string, string) {
	key, ok := c.keys[heroID]
	if !ok {
		key = DefaultImageKey
	}
	name, _, _ := strings.Cut(key, ".")
	return name, c.baseURL + "/npc_dota_hero_" + key
}

func (c *Catalog) IDs() []int64 {
	ids := make([]int64, 0, len(c.keys))
	for id := range c.keys {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Catalog) Len() int {
	return len(c.keys)
}
