package motion

import (
	"fmt"
	"strings"
	"sync"
)

// KeyframesID names the injected stylesheet so repeated installs can be
// detected.
const KeyframesID = "humanitarian-flows-styles"

// StyleSheet is a document's registry of named style blocks.
type StyleSheet interface {
	HasStyle(id string) bool
	AddStyle(id, css string)
}

type keyframe struct {
	at    string
	decls string
}

type keyframeRule struct {
	name   string
	frames []keyframe
}

type animationClass struct {
	class string
	decl  string
}

var keyframeRules = []keyframeRule{
	{name: "fade-in", frames: []keyframe{
		{at: "from", decls: "opacity: 0; transform: scale(0.95);"},
		{at: "to", decls: "opacity: 1; transform: scale(1);"},
	}},
	{name: "bounce-in", frames: []keyframe{
		{at: "0%", decls: "opacity: 0; transform: scale(0.3);"},
		{at: "50%", decls: "transform: scale(1.05);"},
		{at: "70%", decls: "transform: scale(0.9);"},
		{at: "100%", decls: "opacity: 1; transform: scale(1);"},
	}},
	{name: "float-right", frames: []keyframe{
		{at: "0%", decls: "transform: translateX(0) translateY(-50%); opacity: 1;"},
		{at: "100%", decls: "transform: translateX(300%) translateY(-50%); opacity: 0;"},
	}},
}

var animationClasses = []animationClass{
	{class: "animate-fade-in", decl: "animation: fade-in 0.5s ease-out forwards;"},
	{class: "animate-bounce-in", decl: "animation: bounce-in 0.6s cubic-bezier(0.68, -0.55, 0.265, 1.55) forwards;"},
}

// Keyframes returns the stylesheet for the flow demos. It is built on first
// use and shared by the whole process.
var Keyframes = sync.OnceValue(func() string {
	var sb strings.Builder
	for _, r := range keyframeRules {
		fmt.Fprintf(&sb, "@keyframes %s {\n", r.name)
		for _, f := range r.frames {
			fmt.Fprintf(&sb, "  %s { %s }\n", f.at, f.decls)
		}
		sb.WriteString("}\n\n")
	}
	for _, c := range animationClasses {
		fmt.Fprintf(&sb, ".%s { %s }\n", c.class, c.decl)
	}
	return sb.String()
})

// InstallKeyframes adds the flow stylesheet to s unless it is already there.
// It reports whether anything was added.
func InstallKeyframes(s StyleSheet) bool {
	if s.HasStyle(KeyframesID) {
		return false
	}
	s.AddStyle(KeyframesID, Keyframes())
	return true
}
