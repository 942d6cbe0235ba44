package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Triple is a parsed target triple of the form arch-vendor-os[-environment].
type Triple struct {
	Arch        string
	Vendor      string
	OS          string
	Environment string
}

// ParseTriple parses a target triple.
// Three and four component triples are accepted; "unknown" components are kept verbatim.
func ParseTriple(s string) (Triple, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 3 || len(parts) > 4 {
		return Triple{}, zerr.With(zerr.Wrap(ErrInvalidTriple, "expected arch-vendor-os[-environment]"), "triple", s)
	}
	for _, p := range parts {
		if p == "" {
			return Triple{}, zerr.With(zerr.Wrap(ErrInvalidTriple, "empty triple component"), "triple", s)
		}
	}

	t := Triple{Arch: parts[0], Vendor: parts[1], OS: parts[2]}
	if len(parts) == 4 {
		t.Environment = parts[3]
	}
	return t, nil
}

// MustParseTriple is like ParseTriple but panics on error. Intended for constants and tests.
func MustParseTriple(s string) Triple {
	t, err := ParseTriple(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the canonical textual triple.
func (t Triple) String() string {
	if t.IsZero() {
		return ""
	}
	s := t.Arch + "-" + t.Vendor + "-" + t.OS
	if t.Environment != "" {
		s += "-" + t.Environment
	}
	return s
}

// IsZero reports whether the triple is unset.
func (t Triple) IsZero() bool {
	return t == Triple{}
}

// IsWASI reports whether the triple designates a WebAssembly System Interface target.
func (t Triple) IsWASI() bool {
	return strings.HasPrefix(t.OS, "wasi")
}

// IsDarwin reports whether the triple designates an Apple platform.
func (t Triple) IsDarwin() bool {
	return t.Vendor == "apple" || strings.HasPrefix(t.OS, "macos") || strings.HasPrefix(t.OS, "darwin")
}

// IsLinux reports whether the triple designates a Linux target.
func (t Triple) IsLinux() bool {
	return t.OS == "linux"
}

// ExecutableExtension returns the file suffix used for executables on this triple.
func (t Triple) ExecutableExtension() string {
	switch {
	case t.IsWASI():
		return ".wasm"
	case strings.HasPrefix(t.OS, "windows"):
		return ".exe"
	default:
		return ""
	}
}
