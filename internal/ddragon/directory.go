// Package ddragon loads static champion reference data from Riot's Data
// Dragon CDN: alias and display-name translation for the numeric champion
// keys the analytics site speaks, plus the traits the synergy heuristic
// consumes. Loaded once at startup; the tables are immutable afterwards.
package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-champ-stats/internal/interfaces"
	"go-champ-stats/internal/models"
)

// DefaultBaseURL is Riot's public Data Dragon host
const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

const fetchTimeout = 10 * time.Second

var _ interfaces.ChampionDirectory = (*Directory)(nil)

// Directory is the loaded champion table
type Directory struct {
	byKey   map[int]models.ChampionTraits
	byAlias map[string]models.ChampionTraits
	version string // full Data Dragon version, e.g. "15.17.1"
}

type championData struct {
	Data map[string]struct {
		ID   string   `json:"id"`
		Key  string   `json:"key"`
		Name string   `json:"name"`
		Tags []string `json:"tags"`
		Info struct {
			Attack  int `json:"attack"`
			Defense int `json:"defense"`
			Magic   int `json:"magic"`
		} `json:"info"`
	} `json:"data"`
}

// Load fetches the latest version and champion table. Pass an empty baseURL
// for the public CDN.
func Load(ctx context.Context, baseURL string, logger *zap.Logger) (*Directory, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	client := &http.Client{Timeout: fetchTimeout}

	var versions []string
	if err := fetchJSON(ctx, client, baseURL+"/api/versions.json", &versions); err != nil {
		return nil, fmt.Errorf("failed to fetch versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("no content versions available")
	}
	version := versions[0]

	var champions championData
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", baseURL, version)
	if err := fetchJSON(ctx, client, url, &champions); err != nil {
		return nil, fmt.Errorf("failed to fetch champion table: %w", err)
	}
	if len(champions.Data) == 0 {
		return nil, fmt.Errorf("empty champion table")
	}

	dir := &Directory{
		byKey:   make(map[int]models.ChampionTraits, len(champions.Data)),
		byAlias: make(map[string]models.ChampionTraits, len(champions.Data)),
		version: version,
	}
	for _, champ := range champions.Data {
		key, err := strconv.Atoi(champ.Key)
		if err != nil {
			logger.Warn("Skipping champion with non-numeric key",
				zap.String("id", champ.ID), zap.String("key", champ.Key))
			continue
		}
		traits := models.ChampionTraits{
			Alias:       strings.ToLower(champ.ID),
			Name:        champ.Name,
			Key:         key,
			Damage:      damageType(champ.Info.Attack, champ.Info.Magic),
			Frontline:   champ.Info.Defense >= 6 || hasTag(champ.Tags, "Tank"),
			Roles:       lowerAll(champ.Tags),
			DefaultLane: defaultLane(champ.Tags),
		}
		dir.byKey[key] = traits
		dir.byAlias[traits.Alias] = traits
	}

	logger.Info("Loaded champion directory",
		zap.String("version", version), zap.Int("champions", len(dir.byKey)))
	return dir, nil
}

func fetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (d *Directory) AliasByKey(key int) (string, bool) {
	c, ok := d.byKey[key]
	return c.Alias, ok
}

func (d *Directory) NameByKey(key int) (string, bool) {
	c, ok := d.byKey[key]
	return c.Name, ok
}

func (d *Directory) Traits(alias string) (models.ChampionTraits, bool) {
	c, ok := d.byAlias[strings.ToLower(alias)]
	return c, ok
}

func (d *Directory) Aliases() []string {
	aliases := make([]string, 0, len(d.byAlias))
	for alias := range d.byAlias {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// CurrentPatch trims a full Data Dragon version down to the "major.minor"
// form the analytics site filters by.
func (d *Directory) CurrentPatch() string {
	parts := strings.SplitN(d.version, ".", 3)
	if len(parts) < 2 {
		return d.version
	}
	return parts[0] + "." + parts[1]
}

// FullVersion returns the complete Data Dragon version string
func (d *Directory) FullVersion() string {
	return d.version
}

func damageType(attack, magic int) string {
	switch {
	case attack >= magic+3:
		return "physical"
	case magic >= attack+3:
		return "magic"
	default:
		return "mixed"
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func lowerAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(t)
	}
	return out
}

// defaultLane guesses the champion's home lane from its primary class tag.
// Only used as a retry axis, so a coarse mapping is fine.
func defaultLane(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	switch tags[0] {
	case "Marksman":
		return "bottom"
	case "Support":
		return "support"
	case "Mage", "Assassin":
		return "middle"
	default:
		return "top"
	}
}
