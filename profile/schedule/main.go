// Profiling:
// go build ./profile/schedule
// go tool pprof -http=":8000" -nodefraction=0.001 ./schedule cpu.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/edwinsyarief/kurogane/ecs"
	"github.com/edwinsyarief/kurogane/schedule"
)

type position struct{ X, Y float32 }
type velocity struct{ DX, DY float32 }

func main() {
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(2000, 10000)
	p.Stop()
}

func run(frames, numEntities int) {
	ecs.ResetGlobalRegistry()
	pos := ecs.RegisterComponent[position]()
	vel := ecs.RegisterComponent[velocity]()

	w := ecs.NewWorld()
	ecs.SpawnBatch2(w, numEntities, position{}, velocity{DX: 1, DY: 1})

	s := schedule.New()
	s.AddSystem("integrate", schedule.SystemFunc{
		Declare: func(d *schedule.AccessDescriptor) {
			d.ReadsComponent(vel)
			d.WritesComponent(pos)
		},
		Run: func(w *ecs.World) {
			f := ecs.NewFilter[position](w)
			f.Reset()
			for f.Next() {
				f.Get().X += 1
			}
		},
	})
	s.AddSystem("damp", schedule.SystemFunc{
		Declare: func(d *schedule.AccessDescriptor) { d.WritesComponent(vel) },
		Run: func(w *ecs.World) {
			f := ecs.NewFilter[velocity](w)
			f.Reset()
			for f.Next() {
				f.Get().DX *= 0.99
			}
		},
	})

	for range frames {
		s.RunOnce(w)
	}
}
