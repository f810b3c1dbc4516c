// Package engine runs the elevator simulation.
//
// An Engine owns the fleet and the waiting set. Each call to Tick performs,
// without interruption:
//
//  1. drain: queued submissions join the waiting set
//  2. idle-park: with nobody waiting anywhere, empty cars on a floor stop
//  3. advance-and-board: every car advances, then boards the waiting
//     passengers on its floor that want its direction (or any direction if
//     it is stopped)
//  4. dispatch: uncovered waiting passengers summon the nearest stopped car
//  5. verify: fleet invariants are checked; a violation is fatal
//  6. render: a Snapshot is handed to every attached Renderer
//
// Run repeats Tick with a fixed pause until its context is cancelled or the
// configured number of ticks has elapsed.
//
// Submit is the only method that may be called from other goroutines while
// Run is active, together with LastSnapshot.
package engine
