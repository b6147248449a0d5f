// Package pickit hosts small interactive programs written in Starlark on top
// of [Ebitengine].
//
// A script is a module that declares resources while it loads and defines up
// to five callbacks, each optional:
//
//	qs.declare_sprites([["ship", "ship.png"]])
//	qs.declare_animations([["coin", "coin.png", 8, 0.8]])
//
//	def init():
//	    return {"count": 0}
//
//	def update(state):
//	    state["count"] += 1
//
//	def draw(state):
//	    qs.clear(qs.WHITE)
//	    qs.text(str(state["count"]), p0=[10, 10])
//	    qs.anim("coin", p0=[100, 100])
//
//	def event(state, e):
//	    if e.event == "key" and e.key == "escape":
//	        print("bye")
//
// # Running
//
// The simplest way to run a script is [Run], which opens a window and drives
// the frame loop:
//
//	cfg := pickit.DefaultConfig()
//	entry, err := pickit.EntryFromFile("run.star")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := pickit.Run(cfg, entry); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, create a [Host] with [New], call [Host.Start], and then
// call [Host.Step] and [Host.Render] once per frame from your own
// [ebiten.Game].
//
// # Lifecycle
//
// Start evaluates the module once. Declaration calls made while it runs are
// collected into a [ResourceSpec], which [Resolve] then loads concurrently.
// The table becomes visible only after every load succeeded. init runs next,
// and its result is the state value handed to every later callback.
//
// Each frame then dispatches pending input to event, runs onload once, runs
// update when a full update period of real time has accumulated, and finally
// clears the surface and runs draw. update runs at most once per frame and
// the leftover time is carried over.
//
// # The qs module
//
// Drawing calls (qs.rect, qs.circ, qs.sprite, qs.text, ...) only work inside
// draw. Queries (qs.mouse_pos, qs.key, qs.update_rate, ...) work in any
// callback. Calling either outside a callback, for example from a function
// stored and called later from a loaded module's top level, fails.
//
// Unknown resource names and malformed arguments can be handled with
// qs.attempt:
//
//	r = qs.attempt(qs.sprite, "maybe", p0=[0, 0])
//	if not r.ok:
//	    print(r.error)
//
// # Tooling
//
// [Config] is read from pickit.toml. [LoadTestScript] drives a run from a JSON
// list of synthetic input steps, [Host.Screenshot] captures frames to PNG,
// and [Host.Watch] reloads the script when its files change.
//
// [Ebitengine]: https://ebitengine.org
package pickit
