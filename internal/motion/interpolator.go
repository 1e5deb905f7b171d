package motion

import "time"

// Interpolator drives one Request on a Scheduler, emitting a Frame per
// display refresh until the final frame lands on the target.
type Interpolator struct {
	req     Request
	sched   Scheduler
	begin   time.Time
	handle  FrameHandle
	pending bool

	onFrame    func(Frame)
	onComplete func()

	cancelled bool
	done      bool
}

// Start begins req on s. The clock starts at s.Now() plus req.Delay; no
// frame is emitted before that. onComplete may be nil.
func Start(s Scheduler, req Request, onFrame func(Frame), onComplete func()) *Interpolator {
	ip := &Interpolator{
		req:        req,
		sched:      s,
		begin:      s.Now().Add(req.Delay),
		onFrame:    onFrame,
		onComplete: onComplete,
	}
	ip.schedule()
	return ip
}

func (ip *Interpolator) schedule() {
	ip.handle = ip.sched.RequestFrame(ip.tick)
	ip.pending = true
}

func (ip *Interpolator) tick(now time.Time) {
	ip.pending = false
	if ip.cancelled || ip.done {
		return
	}

	elapsed := now.Sub(ip.begin)
	if elapsed < 0 {
		ip.schedule()
		return
	}

	f, done := ip.req.FrameAt(elapsed)
	if ip.onFrame != nil {
		ip.onFrame(f)
	}
	// onFrame may have superseded this interpolator.
	if ip.cancelled {
		return
	}
	if done {
		ip.done = true
		if ip.onComplete != nil {
			ip.onComplete()
		}
		return
	}
	ip.schedule()
}

// Cancel stops the interpolator. No callbacks run after Cancel returns.
func (ip *Interpolator) Cancel() {
	if ip.cancelled || ip.done {
		return
	}
	ip.cancelled = true
	if ip.pending {
		ip.sched.CancelFrame(ip.handle)
		ip.pending = false
	}
}

// Active reports whether the interpolator still owns its target.
func (ip *Interpolator) Active() bool {
	return !ip.cancelled && !ip.done
}

// Request returns the request being driven.
func (ip *Interpolator) Request() Request {
	return ip.req
}
