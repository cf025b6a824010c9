package ecs_test

import (
	"fmt"

	"github.com/plus3/blockmap/ecs"
)

// A View matches entities against a struct of component pointers without a
// scheduler. An EntityId field receives the id of each match.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	storage := ecs.NewStorage(registry)

	block := storage.Spawn(Position{X: 2, Y: 50}, Name{Value: "block"})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	if item := view.Get(block); item != nil {
		fmt.Printf("(%.0f, %.0f) moving: %v, same id: %v\n",
			item.Position.X, item.Position.Y, item.Velocity != nil, item.EntityId == block)
	}

	// Output:
	// (2, 50) moving: false, same id: true
}

// Singletons hold values that exist once per storage, such as per-frame
// input or published results.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	type Hover struct{ Tile [2]int }
	hover := ecs.NewSingleton(storage, Hover{Tile: [2]int{16, 16}})

	var read *Hover
	storage.ReadSingleton(&read)
	read.Tile[0] = 3

	fmt.Println(hover.Get().Tile)

	// Output:
	// [3 16]
}
