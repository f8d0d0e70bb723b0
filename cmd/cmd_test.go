package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharoon321/event-attendance/utils"
)

func TestGentoken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"gentoken", "--env-file", "", "--name", "Ops"})
	require.NoError(t, rootCmd.Execute())

	claims, err := utils.NewTokenManager("cli-secret", time.Hour).Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "Ops", claims.Name)
	assert.True(t, claims.IsAdmin)
}

func TestGentoken_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"gentoken", "--env-file", ""})
	assert.Error(t, rootCmd.Execute())
}
