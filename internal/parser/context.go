package parser

import "github.com/mcweebus/quietcurrent/internal/game"

// ContextFor lists the names the world currently offers.
func ContextFor(s *game.Session) ParseContext {
	ctx := ParseContext{
		Conditions: []string{string(game.CondDust), string(game.CondWire), string(game.CondDebris), string(game.CondConnector)},
		FrameTasks: []string{string(game.FrameHarvest), string(game.FrameSow), string(game.FrameClear), string(game.FrameWater)},
		Visitor:    s.Visitor != nil,
	}
	for _, b := range game.Buildings() {
		ctx.Buildings = append(ctx.Buildings, b.Name)
	}
	if s.World.GardenVariant == game.VariantCrops {
		for _, c := range game.Crops() {
			ctx.Crops = append(ctx.Crops, c.Key)
		}
	}
	if s.World.FlowersUnlocked {
		for _, f := range game.FlowerVarieties() {
			ctx.Flowers = append(ctx.Flowers, f.Key)
		}
	}
	return ctx
}
