package workspace

import (
	"errors"
	"io/fs"
	"os"

	"github.com/jdx/go-netrc"
	"go.trai.ch/zerr"
)

// defaultMachine is the name netrc gives the entry matching every host.
const defaultMachine = "default"

// Credentials are the login and password of a netrc machine entry.
type Credentials struct {
	Login    string
	Password string
}

// Netrc holds the machine credentials of a netrc file.
type Netrc struct {
	file *netrc.Netrc
}

// LoadNetrc reads the netrc file at path. A missing file or an empty path yields
// an empty Netrc.
func LoadNetrc(path string) (*Netrc, error) {
	if path == "" {
		return &Netrc{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Netrc{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open netrc file"), "path", path)
	}

	file, err := netrc.Parse(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse netrc file"), "path", path)
	}
	return &Netrc{file: file}, nil
}

// Lookup returns the credentials for host, falling back to the default entry.
// The first entry naming a host wins.
func (n *Netrc) Lookup(host string) (Credentials, bool) {
	if n == nil || n.file == nil {
		return Credentials{}, false
	}
	m := n.file.Machine(host)
	if m == nil {
		if m = n.file.Machine(defaultMachine); m == nil || !m.IsDefault {
			return Credentials{}, false
		}
	}
	return Credentials{Login: m.Get("login"), Password: m.Get("password")}, true
}
