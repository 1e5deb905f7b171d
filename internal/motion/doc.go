/*
Package motion animates numbers and styles on a page.

# Overview

An animation is a Request: a start and target value, a duration, an easing
curve and the formatting used to display intermediate values. An
Interpolator drives a Request on the host's frame Scheduler and writes one
Frame per display refresh, finishing on a frame pinned exactly at the
target.

A Trigger starts an animation the first time its element becomes visible,
at most once per mount. The Director wires both to a Page: it finds the
counters, progress segments, reveal groups, hover cards and demo flows by
class, reads their data-* attributes and binds each to its own trigger.

# Threading

Nothing in this package locks. Hosts call every method, and deliver every
callback, on a single UI goroutine.
*/
package motion
