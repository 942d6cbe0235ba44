package manifest

import (
	"encoding/hex"
	"path/filepath"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

const checksumLength = 64

func invalid(msg, key string, value any) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidManifest, msg), key, value)
}

func validate(pf *PackageFile, sandbox bool) error {
	if pf.Name == "" {
		return zerr.Wrap(domain.ErrInvalidManifest, "missing package name")
	}

	deps := make(map[string]struct{}, len(pf.Dependencies))
	for _, d := range pf.Dependencies {
		if (d.URL == "") == (d.Path == "") {
			return invalid("dependency needs exactly one of url or path", "dependency", d.Identity)
		}
		if _, dup := deps[d.Identity]; dup {
			return invalid("duplicate dependency", "dependency", d.Identity)
		}
		deps[d.Identity] = struct{}{}
	}

	targets := make(map[string]struct{}, len(pf.Targets))
	for _, t := range pf.Targets {
		if t.Name == "" {
			return zerr.Wrap(domain.ErrInvalidManifest, "target without name")
		}
		if _, dup := targets[t.Name]; dup {
			return invalid("duplicate target", "target", t.Name)
		}
		targets[t.Name] = struct{}{}

		if t.Kind != domain.TargetRegular.String() && t.Kind != domain.TargetExecutable.String() &&
			t.Kind != domain.TargetTest.String() {
			return invalid("unknown target kind", "kind", t.Kind)
		}
		if sandbox && !filepath.IsLocal(filepath.FromSlash(t.Path)) {
			return invalid("target path escapes the package", "target", t.Name)
		}
	}

	for _, t := range pf.Targets {
		for _, dep := range t.Dependencies {
			_, isTarget := targets[dep]
			_, isPackage := deps[dep]
			if !isTarget && !isPackage {
				return zerr.With(invalid("unknown target dependency", "target", t.Name), "dependency", dep)
			}
		}
	}

	products := make(map[string]struct{}, len(pf.Products))
	for _, p := range pf.Products {
		if _, dup := products[p.Name]; dup || p.Name == "" {
			return invalid("duplicate or empty product name", "product", p.Name)
		}
		products[p.Name] = struct{}{}

		if _, ok := domain.ParseProductKind(p.Kind); !ok {
			return zerr.With(invalid("unknown product kind", "product", p.Name), "kind", p.Kind)
		}
		if len(p.Targets) == 0 {
			return invalid("product has no targets", "product", p.Name)
		}
		for _, name := range p.Targets {
			if _, ok := targets[name]; !ok {
				return zerr.With(invalid("product references unknown target", "product", p.Name), "target", name)
			}
		}
	}

	for _, a := range pf.Artifacts {
		if a.Name == "" || a.URL == "" {
			return invalid("artifact needs a name and a url", "artifact", a.Name)
		}
		if _, err := hex.DecodeString(a.Checksum); err != nil || len(a.Checksum) != checksumLength {
			return invalid("artifact checksum must be a sha256 hex digest", "artifact", a.Name)
		}
	}
	return nil
}
