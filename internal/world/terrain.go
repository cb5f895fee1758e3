package world

import "math"

// Terrain types for grid cells.
type Terrain uint8

const (
	TerrainNone         Terrain = iota // Not generated yet
	TerrainPlain                       // Easy going
	TerrainHighland                    // Hills around mountain ranges
	TerrainMountain                    // Slow, never touches water
	TerrainShallowWater                // Lake edges, impassable
	TerrainDeepWater                   // Lake interiors, impassable
	TerrainPlaceholder                 // Out-of-bounds sentinel

	terrainCount
)

// CostImpassable is the movement cost of cells that cannot be entered.
const CostImpassable = math.MaxInt32

// Movement costs per terrain.
const (
	CostEasy   = 1
	CostMedium = 2
	CostHard   = 4
)

type movement struct {
	cost    int
	enabled bool
}

var movementTable = [terrainCount]movement{
	TerrainNone:         {CostEasy, true},
	TerrainPlain:        {CostEasy, true},
	TerrainHighland:     {CostMedium, true},
	TerrainMountain:     {CostHard, true},
	TerrainShallowWater: {CostImpassable, false},
	TerrainDeepWater:    {CostImpassable, false},
	TerrainPlaceholder:  {CostImpassable, false},
}

// MovementCost returns the cost of entering a cell of this terrain.
func (t Terrain) MovementCost() int {
	if t >= terrainCount {
		return CostImpassable
	}
	return movementTable[t].cost
}

// MovementEnabled reports whether a cell of this terrain can be entered at all.
func (t Terrain) MovementEnabled() bool {
	if t >= terrainCount {
		return false
	}
	return movementTable[t].enabled
}

// String implements fmt.Stringer.
func (t Terrain) String() string {
	return TerrainName(t)
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainNone:
		return "None"
	case TerrainPlain:
		return "Plain"
	case TerrainHighland:
		return "Highland"
	case TerrainMountain:
		return "Mountain"
	case TerrainShallowWater:
		return "ShallowWater"
	case TerrainDeepWater:
		return "DeepWater"
	case TerrainPlaceholder:
		return "Placeholder"
	default:
		return "Unknown"
	}
}

// ParseTerrain is the inverse of TerrainName.
func ParseTerrain(name string) (Terrain, bool) {
	for t := TerrainNone; t < terrainCount; t++ {
		if TerrainName(t) == name {
			return t, true
		}
	}
	return TerrainNone, false
}

// Group is a set of terrain types. The zero value is empty.
type Group struct {
	members [terrainCount]bool
}

// GroupOf builds a group from the given terrain types.
func GroupOf(types ...Terrain) Group {
	var g Group
	for _, t := range types {
		if t < terrainCount {
			g.members[t] = true
		}
	}
	return g
}

// Contains reports whether t is a member of the group.
func (g Group) Contains(t Terrain) bool {
	return t < terrainCount && g.members[t]
}

// Union returns the set union of g and o.
func (g Group) Union(o Group) Group {
	for i, ok := range o.members {
		if ok {
			g.members[i] = true
		}
	}
	return g
}

// Terrain groups used as neighbor filters.
var (
	Land  = GroupOf(TerrainPlain, TerrainHighland, TerrainMountain)
	Water = GroupOf(TerrainShallowWater, TerrainDeepWater)
	Any   = GroupOf(TerrainNone, TerrainPlain, TerrainHighland, TerrainMountain,
		TerrainShallowWater, TerrainDeepWater, TerrainPlaceholder)
)
