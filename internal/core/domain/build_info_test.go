package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pax/internal/core/domain"
)

func TestNewBuildInfo(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := planTask("link:app/app", domain.TaskLink)

	info := domain.NewBuildInfo(task, "in", "out", at)

	assert.Equal(t, "link:app/app", info.TaskName)
	assert.Equal(t, domain.TaskLink, info.Kind)
	assert.Equal(t, "in", info.InputHash)
	assert.Equal(t, "out", info.OutputHash)
	assert.Equal(t, at, info.Timestamp)
}

func TestBuildInfo_Matches(t *testing.T) {
	info := &domain.BuildInfo{InputHash: "in", OutputHash: "out"}

	assert.True(t, info.MatchesInputs("in"))
	assert.False(t, info.MatchesInputs("stale"))
	assert.False(t, info.MatchesInputs(""))
	assert.True(t, info.MatchesOutputs("out"))
	assert.False(t, info.MatchesOutputs("other"))

	var missing *domain.BuildInfo
	assert.False(t, missing.MatchesInputs("in"))
	assert.False(t, missing.MatchesOutputs("out"))
}

func TestBuildInfo_JSON(t *testing.T) {
	task := planTask("compile:app/App", domain.TaskCompile)
	data, err := json.Marshal(domain.NewBuildInfo(task, "in", "", time.Time{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"task_name":"compile:app/App","kind":"compile","input_hash":"in"}`, string(data))
}
