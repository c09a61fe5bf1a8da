package empire

// SpawnGroup is the handle callers use to queue units at a site's spawns.
type SpawnGroup struct {
	Site   string
	Spawns []string
}

// SpawnGroup returns the cached spawn handle for site, creating it on first
// use in a cycle. It returns nil when the site is not visible or has no spawn.
func (e *Empire) SpawnGroup(site string) *SpawnGroup {
	c := e.cycle
	if g, ok := c.spawnGroups[site]; ok {
		return g
	}
	if e.deps.Sites == nil {
		return nil
	}
	spawns := e.deps.Sites.Spawns(site)
	if len(spawns) == 0 {
		return nil
	}
	g := &SpawnGroup{Site: site, Spawns: spawns}
	c.spawnGroups[site] = g
	return g
}
