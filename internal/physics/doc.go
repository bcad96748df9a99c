// Package physics provides the closed-form motion laws animated by kinelab.
//
// Both models are immutable value objects; every derived quantity is a pure
// function of the elapsed time t:
//
//   - [FreeFall]: vertical drop under constant gravity, positive velocity
//     pointing down
//   - [Uniform]: rectilinear motion at constant velocity
//
// Questions without a physical answer are reported through sentinels rather
// than errors: [FreeFall.TimeToGround] returns [Never] and
// [Uniform.TimeToReach] returns +Inf for a body at rest.
//
//	ff := physics.NewFreeFall(50, 0)
//	if t := ff.TimeToGround(); t != physics.Never {
//	    fmt.Printf("lands after %.2fs at %.2fm/s\n", t, ff.ImpactVelocity())
//	}
package physics
