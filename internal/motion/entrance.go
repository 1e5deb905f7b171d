package motion

import "time"

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func scaleFade(from float64, d time.Duration, ease Ease) Tween {
	return Tween{
		Props: []Prop{
			{Name: "scale", From: from, To: 1, Decimals: 3},
			{Name: "opacity", From: 0, To: 1, Decimals: 3},
		},
		Duration: d,
		Ease:     ease,
	}
}

// HeroEntrance is the one-shot sequence for the landing page chrome.
func HeroEntrance() Timeline {
	out := EaseOutQuart // power3.out
	return Timeline{Steps: []Step{
		{Class: "hero-logo", Tween: scaleFade(0.5, ms(800), BackOut(1.7))},
		{Class: "hero-title", Tween: Fade(100, ms(1000), out), Stagger: ms(200), Position: -ms(400)},
		{Class: "hero-subtitle", Tween: Fade(50, ms(800), out), Position: -ms(600)},
		{Class: "countdown-container", Tween: scaleFade(0.8, ms(600), out), Position: -ms(400)},
		{Class: "hero-button", Tween: Fade(30, ms(600), out), Stagger: ms(150), Position: -ms(300)},
		{Class: "hero-grid-bg", Tween: Tween{
			Props:    []Prop{{Name: "opacity", From: 0, To: 1, Decimals: 3}},
			Duration: ms(1500),
			Ease:     out,
		}, Absolute: true},
	}}
}
