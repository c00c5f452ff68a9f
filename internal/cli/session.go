package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hrmanager/internal/manager"
	"github.com/mesh-intelligence/hrmanager/internal/paths"
	"github.com/mesh-intelligence/hrmanager/internal/sqlite"
	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// session is an attached backend with its store loaded.
type session struct {
	store   *store.Store
	manager *manager.Manager
}

// dataDir resolves the data directory from the flag, config.yaml and env.
func (a *app) dataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return "", sysErrorf("resolve data dir: %w", err)
	}
	return dir, nil
}

// attachBackend resolves the data directory, creates a SQLite backend and
// attaches it. The caller must Detach the returned backend.
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, err
	}

	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	backend := sqlite.NewBackend(a.logger)
	if err := backend.Attach(cfg); err != nil {
		return nil, sysErrorf("attach backend: %w", err)
	}
	return backend, nil
}

// withSession loads the store and runs fn against it. When save is set and
// fn succeeds, the store is written back before withSession returns.
func (a *app) withSession(save bool, fn func(s *session) error) (err error) {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer func() {
		if derr := backend.Detach(); derr != nil && err == nil {
			err = sysErrorf("detach backend: %w", derr)
		}
	}()

	st := store.New()
	if err := backend.Load(st); err != nil {
		return sysErrorf("load store: %w", err)
	}
	s := &session{store: st, manager: manager.New(st, a.logger)}

	if err := fn(s); err != nil {
		return err
	}
	if save {
		if err := backend.Save(st); err != nil {
			return sysErrorf("save store: %w", err)
		}
	}
	return nil
}

// mutate runs one manager command, saves the store and prints the result.
// Nothing is written when the command fails.
func (a *app) mutate(cmd *cobra.Command, fn func(s *session) (manager.Result, error)) error {
	var res manager.Result
	err := a.withSession(true, func(s *session) error {
		var err error
		res, err = fn(s)
		return err
	})
	if err != nil {
		return err
	}
	return a.printResult(cmd, res)
}

// parseIndex parses a 1-based list index argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", types.ErrInvalidIndex, arg)
	}
	return n, nil
}

func parseIndexes(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := parseIndex(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
