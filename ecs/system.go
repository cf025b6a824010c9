package ecs

// System is one unit of per-tick logic. Query and Singleton fields on a
// system struct are initialized by the Scheduler when it is registered, and
// any other fields persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}
