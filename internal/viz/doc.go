// Package viz is the terminal front end of kinelab.
//
// [Model] is a Bubble Tea application with a menu and one screen per motion.
// Each screen has an input form, a braille [Canvas] showing the sprite and a
// telemetry panel fed by the drivers in package sim.
//
// # Key Bindings
//
//	enter     - Start (or restart) a run from the form
//	ctrl+x    - Stop the run
//	tab       - Next field
//	ctrl+t    - Time to ground / time to reach the target
//	ctrl+e    - Velocity needed to reach the target in the given time
//	ctrl+p    - Cycle sprite
//	ctrl+g    - Cycle color theme
//	esc       - Back to the menu
package viz
