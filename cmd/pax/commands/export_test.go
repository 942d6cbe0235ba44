package commands

// Test hooks for unexported helpers.
var (
	BuildSubset = buildSubset
	LoadEnvFile = loadEnvFile
)
