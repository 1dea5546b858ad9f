package schedule

import "github.com/edwinsyarief/kurogane/ecs"

// SystemFunc adapts a pair of closures into a System.
type SystemFunc struct {
	Declare func(d *AccessDescriptor)
	Run     func(w *ecs.World)
}

// DeclareAccess implements System.
func (self SystemFunc) DeclareAccess(d *AccessDescriptor) {
	if self.Declare != nil {
		self.Declare(d)
	}
}

// Execute implements System.
func (self SystemFunc) Execute(w *ecs.World) {
	if self.Run != nil {
		self.Run(w)
	}
}
