package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoals_Known(t *testing.T) {
	require.Equal(t, []string{"compile", "testCompile", "help"}, Goals("maven-compiler-plugin"))
	require.True(t, Known("spring-boot-maven-plugin"))
}

func TestGoals_UnknownPluginOffersHelp(t *testing.T) {
	require.Equal(t, []string{"help"}, Goals("acme-maven-plugin"))
	require.False(t, Known("acme-maven-plugin"))
}

func TestGoals_ReturnsCopy(t *testing.T) {
	goals := Goals("maven-clean-plugin")
	goals[0] = "mutated"
	require.Equal(t, []string{"clean", "help"}, Goals("maven-clean-plugin"))

	fallback := Goals("unknown")
	fallback[0] = "mutated"
	require.Equal(t, []string{"help"}, Goals("other"))
}
