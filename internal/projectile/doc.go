// Package projectile simulates a point thrown through constant gravity and
// wind and paints its path onto a canvas.
//
// A [Projectile] is in flight while its position has y > 0 and has landed
// once y <= 0. [Tick] advances it one step:
//
//	position' = position + velocity
//	velocity' = velocity + gravity + wind
//
// [Simulator.Run] plots every in-flight state, starting with the initial
// one, at pixel (round(x), height - round(y)) so that "up" in the simulation
// is "up" in the image. Positions that fall outside the canvas are dropped.
//
// # Example
//
//	sc := projectile.DefaultScenario()
//	text, err := projectile.Render(ctx, sc)
//
// # Termination
//
// A run ends when the projectile lands. Parameters that never bring y down
// to zero are stopped by [Config.MaxTicks] with [ErrNotLanded].
package projectile
