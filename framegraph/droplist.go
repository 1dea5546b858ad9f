package framegraph

// dropList keeps pass payloads reachable for the lifetime of the graph and
// runs registered release functions in reverse insertion order, mirroring the
// ordered destruction the build arena owes its payloads.
type dropList struct {
	retained []any
	drops    []func()
}

// retain keeps v alive until the list is released.
func (self *dropList) retain(v any) {
	self.retained = append(self.retained, v)
}

// onRelease registers fn to run when the list is released.
func (self *dropList) onRelease(fn func()) {
	self.drops = append(self.drops, fn)
}

// release runs the registered functions newest-first and clears the list.
func (self *dropList) release() {
	for i := len(self.drops) - 1; i >= 0; i-- {
		self.drops[i]()
	}
	self.drops = nil
	self.retained = nil
}
