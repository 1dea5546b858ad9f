// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/edwinsyarief/kurogane/ecs"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		ecs.ResetGlobalRegistry()
		ecs.RegisterComponent[comp1]()
		ecs.RegisterComponent[comp2]()

		w := ecs.NewWorld()
		filter := ecs.NewFilter[comp1](w)

		for range iters {
			spawned := ecs.SpawnBatch2(w, numEntities, comp1{V: 1}, comp2{V: 2})
			filter.Reset()
			for filter.Next() {
				c := filter.Get()
				c.V += c.W
			}
			for _, e := range spawned {
				w.RemoveEntity(e)
			}
			w.ProcessRemovals()
		}
	}
}
