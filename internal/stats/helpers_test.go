package stats

import (
	"sort"

	"go-champ-stats/internal/models"
)

// stubDirectory is a tiny fixed champion table shared by the package tests
type stubDirectory struct {
	champions map[int]models.ChampionTraits
	patch     string
}

func newStubDirectory() *stubDirectory {
	champions := []models.ChampionTraits{
		{Alias: "aatrox", Name: "Aatrox", Key: 266, Damage: "physical", Frontline: true, Roles: []string{"fighter"}, DefaultLane: "top"},
		{Alias: "tryndamere", Name: "Tryndamere", Key: 23, Damage: "physical", Frontline: false, Roles: []string{"fighter"}, DefaultLane: "top"},
		{Alias: "garen", Name: "Garen", Key: 86, Damage: "physical", Frontline: true, Roles: []string{"fighter", "tank"}, DefaultLane: "top"},
		{Alias: "riven", Name: "Riven", Key: 92, Damage: "physical", Frontline: false, Roles: []string{"fighter", "assassin"}, DefaultLane: "top"},
		{Alias: "annie", Name: "Annie", Key: 1, Damage: "magic", Frontline: false, Roles: []string{"mage"}, DefaultLane: "middle"},
		{Alias: "malphite", Name: "Malphite", Key: 54, Damage: "magic", Frontline: true, Roles: []string{"tank"}, DefaultLane: "top"},
		{Alias: "kayle", Name: "Kayle", Key: 10, Damage: "mixed", Frontline: false, Roles: []string{"fighter", "mage"}, DefaultLane: "top"},
	}

	byKey := make(map[int]models.ChampionTraits, len(champions))
	for _, c := range champions {
		byKey[c.Key] = c
	}
	return &stubDirectory{champions: byKey, patch: "15.17"}
}

func (d *stubDirectory) AliasByKey(key int) (string, bool) {
	c, ok := d.champions[key]
	return c.Alias, ok
}

func (d *stubDirectory) NameByKey(key int) (string, bool) {
	c, ok := d.champions[key]
	return c.Name, ok
}

func (d *stubDirectory) Traits(alias string) (models.ChampionTraits, bool) {
	for _, c := range d.champions {
		if c.Alias == alias {
			return c, true
		}
	}
	return models.ChampionTraits{}, false
}

func (d *stubDirectory) Aliases() []string {
	aliases := make([]string, 0, len(d.champions))
	for _, c := range d.champions {
		aliases = append(aliases, c.Alias)
	}
	sort.Strings(aliases)
	return aliases
}

func (d *stubDirectory) CurrentPatch() string {
	return d.patch
}
