package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstallKeyframesOnce(t *testing.T) {
	sheet := &fakeStyleSheet{}

	assert.True(t, InstallKeyframes(sheet))
	assert.False(t, InstallKeyframes(sheet))
	assert.Equal(t, 1, sheet.adds)

	css := sheet.styles[KeyframesID]
	for _, want := range []string{"@keyframes fade-in", "@keyframes bounce-in", "@keyframes float-right", ".animate-fade-in", ".animate-bounce-in"} {
		assert.Contains(t, css, want)
	}
	assert.Equal(t, css, Keyframes())
}
