package coinledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Profile bundles the ledger and the configuration of one user profile.
// The ledger lives in <dir>/<name>.jsonl, the settings in
// <dir>/<name>.config.json.
type Profile struct {
	Name   string
	Dir    string
	Ledger *Ledger
	Config Config
}

// DefaultProfileDir resolves the directory holding profile files. The
// COINLEDGER_HOME environment variable overrides the default of
// ~/.coinledger.
func DefaultProfileDir() (string, error) {
	if dir := os.Getenv("COINLEDGER_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, ".coinledger"), nil
}

// LedgerPath returns the profile's transaction file path.
func (p *Profile) LedgerPath() string {
	return filepath.Join(p.Dir, p.Name+".jsonl")
}

// ConfigPath returns the profile's settings file path.
func (p *Profile) ConfigPath() string {
	return filepath.Join(p.Dir, p.Name+".config.json")
}

// OpenProfile loads a profile from dir, creating an empty one in memory if
// no files exist yet. The link graph is normalized defensively on load and
// the id mark is restored from the settings, so a crash between normalize
// and persist never leads to id reuse.
func OpenProfile(dir, name string) (*Profile, error) {
	p := &Profile{
		Name:   name,
		Dir:    dir,
		Ledger: NewLedger(),
		Config: DefaultConfig(),
	}

	f, err := os.Open(p.LedgerPath())
	switch {
	case err == nil:
		defer f.Close()
		ledger, err := DecodeLedger(f)
		if err != nil {
			return nil, fmt.Errorf("could not load profile %q: %w", name, err)
		}
		p.Ledger = ledger
	case errors.Is(err, fs.ErrNotExist):
		// fresh profile
	default:
		return nil, fmt.Errorf("could not open profile %q: %w", name, err)
	}

	cf, err := os.Open(p.ConfigPath())
	switch {
	case err == nil:
		defer cf.Close()
		cfg, err := DecodeConfig(cf)
		if err != nil {
			return nil, fmt.Errorf("could not load config of profile %q: %w", name, err)
		}
		p.Config = cfg
	case errors.Is(err, fs.ErrNotExist):
		// keep defaults
	default:
		return nil, fmt.Errorf("could not open config of profile %q: %w", name, err)
	}

	p.Ledger.SetLastID(p.Config.LastID)
	return p, nil
}

// Save persists the ledger and the settings. Each file is written to a
// temporary sibling and renamed into place; the rename is the durability
// boundary.
func (p *Profile) Save() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("could not create profile directory: %w", err)
	}

	p.Config.LastID = p.Ledger.LastID()

	if err := writeAtomic(p.LedgerPath(), func(f *os.File) error {
		return EncodeLedger(f, p.Ledger)
	}); err != nil {
		return fmt.Errorf("could not save ledger: %w", err)
	}
	if err := writeAtomic(p.ConfigPath(), func(f *os.File) error {
		return EncodeConfig(f, p.Config)
	}); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}
	return nil
}

func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
