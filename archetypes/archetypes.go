package archetypes

import (
	"github.com/automoto/matchboard/components"
	cfg "github.com/automoto/matchboard/config"
	"github.com/automoto/matchboard/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Board = newArchetype(
		tags.Board,
		components.Board,
		components.Effects,
		components.DisplaySettings,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(all, cs...)...,
	))
	return e
}
