package domain

// TaskKind classifies the commands of a build plan.
type TaskKind string

const (
	// TaskCompile compiles the sources of one target.
	TaskCompile TaskKind = "compile"
	// TaskArchive bundles a library target into a static archive.
	TaskArchive TaskKind = "archive"
	// TaskLink links a product.
	TaskLink TaskKind = "link"
	// TaskPackage converts a linked cross application into its deployable format.
	TaskPackage TaskKind = "package"
)

// Task is a single command of a build plan.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name         InternedString    `yaml:"name"`
	Kind         TaskKind          `yaml:"kind"`
	Command      []string          `yaml:"command,flow"`
	WorkingDir   InternedString    `yaml:"working_dir,omitempty"`
	Environment  map[string]string `yaml:"environment,omitempty"`
	Inputs       []InternedString  `yaml:"inputs,omitempty"`
	Outputs      []InternedString  `yaml:"outputs,omitempty"`
	Dependencies []InternedString  `yaml:"dependencies,omitempty"`
}
