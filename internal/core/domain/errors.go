package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in a dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrConfiguration is the root of all invalid option combinations.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrMissingCrossToolchainOption is returned when cross toolchain construction is requested
	// without one of its required paths.
	ErrMissingCrossToolchainOption = zerr.Wrap(ErrConfiguration, "missing required option for cross toolchain")

	// ErrConflictingDestinationOptions is returned when both a destination file and a cross
	// toolchain are requested.
	ErrConflictingDestinationOptions = zerr.Wrap(ErrConfiguration, "destination file and cross toolchain are mutually exclusive")

	// ErrInvalidConfiguration is returned for an unknown build configuration name.
	ErrInvalidConfiguration = zerr.Wrap(ErrConfiguration, "invalid build configuration, expected 'debug' or 'release'")

	// ErrInvalidBuildSystem is returned for an unknown build system name.
	ErrInvalidBuildSystem = zerr.Wrap(ErrConfiguration, "invalid build system, expected 'native' or 'ide'")

	// ErrInvalidSanitizer is returned for an unknown sanitizer name.
	ErrInvalidSanitizer = zerr.Wrap(ErrConfiguration, "invalid sanitizer, expected one of 'address', 'thread', 'undefined', 'scudo'")

	// ErrInvalidIndexStoreMode is returned for an unknown index store mode.
	ErrInvalidIndexStoreMode = zerr.Wrap(ErrConfiguration, "invalid index store mode, expected 'auto', 'on' or 'off'")

	// ErrInvalidJobs is returned when the job count is not a positive integer.
	ErrInvalidJobs = zerr.Wrap(ErrConfiguration, "job count must be a positive integer")

	// ErrInvalidTriple is returned when a target triple cannot be parsed.
	ErrInvalidTriple = zerr.Wrap(ErrConfiguration, "invalid target triple")

	// ErrToolchainResolution is returned when a toolchain cannot be resolved.
	ErrToolchainResolution = zerr.New("failed to resolve toolchain")

	// ErrCompilerNotFound is returned when no compiler can be found in a toolchain directory.
	ErrCompilerNotFound = zerr.Wrap(ErrToolchainResolution, "compiler not found")

	// ErrInvalidDestinationFile is returned when a destination description cannot be decoded.
	ErrInvalidDestinationFile = zerr.Wrap(ErrToolchainResolution, "invalid destination file")

	// ErrUnsupportedDestinationVersion is returned for destination files with an unknown schema version.
	ErrUnsupportedDestinationVersion = zerr.Wrap(ErrToolchainResolution, "unsupported destination file version")

	// ErrUnsupportedProductKind is returned when an operation is requested for a product kind it cannot handle.
	ErrUnsupportedProductKind = zerr.New("unsupported product kind")

	// ErrProductNotFound is returned when a requested product does not exist in the package graph.
	ErrProductNotFound = zerr.New("product not found")

	// ErrTargetNotFound is returned when a requested target does not exist in the package graph.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrNoExecutableProduct is returned when no executable product can be picked to run.
	ErrNoExecutableProduct = zerr.New("no executable product available")

	// ErrMultipleExecutableProducts is returned when more than one executable product could be run.
	ErrMultipleExecutableProducts = zerr.New("multiple executable products available")

	// ErrPackageAlreadyExists is returned when a package identity is added to a graph twice.
	ErrPackageAlreadyExists = zerr.New("package already exists")

	// ErrManifestNotFound is returned when a package directory has no manifest.
	ErrManifestNotFound = zerr.New("could not find package manifest")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestParseFailed is returned when the manifest file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse package manifest")

	// ErrInvalidManifest is returned when a manifest is syntactically valid but inconsistent.
	ErrInvalidManifest = zerr.New("invalid package manifest")

	// ErrDependencyFetchFailed is returned when a dependency repository cannot be fetched.
	ErrDependencyFetchFailed = zerr.New("failed to fetch dependency")

	// ErrArtifactDownloadFailed is returned when a binary artifact cannot be downloaded.
	ErrArtifactDownloadFailed = zerr.New("failed to download binary artifact")

	// ErrArtifactChecksumMismatch is returned when a downloaded artifact does not match its checksum.
	ErrArtifactChecksumMismatch = zerr.New("binary artifact checksum mismatch")

	// ErrWorkspaceStateReadFailed is returned when the workspace state cannot be read.
	ErrWorkspaceStateReadFailed = zerr.New("failed to read workspace state")

	// ErrWorkspaceStateWriteFailed is returned when the workspace state cannot be written.
	ErrWorkspaceStateWriteFailed = zerr.New("failed to write workspace state")

	// ErrDiagnosticsReported is returned when an operation completed but emitted error diagnostics.
	ErrDiagnosticsReported = zerr.New("errors were reported")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrBuildCancelled is returned when a build was cancelled before completion.
	ErrBuildCancelled = zerr.New("build cancelled")

	// ErrBuildManifestReadFailed is returned when a persisted build manifest cannot be loaded.
	ErrBuildManifestReadFailed = zerr.New("failed to read build manifest")

	// ErrBuildManifestWriteFailed is returned when a build manifest cannot be persisted.
	ErrBuildManifestWriteFailed = zerr.New("failed to write build manifest")

	// ErrProcessSetTerminated is returned when a process is spawned after the process set was torn down.
	ErrProcessSetTerminated = zerr.New("process set has been terminated")

	// ErrEmptyCommand is returned when a process is requested without arguments.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrInputNotFound is returned when a declared input file or directory is not found.
	ErrInputNotFound = zerr.New("input not found")

	// ErrEnvFileReadFailed is returned when a dotenv file exists but cannot be parsed.
	ErrEnvFileReadFailed = zerr.New("failed to read environment file")

	// ErrMetricsWriteFailed is returned when the metrics file cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)
