// Package daemon wires the picker together: the X backend, the layout
// store, the grid, the coordinator and its listeners, the global hotkeys,
// the control socket and the config watcher.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/gridsnap/internal/autostart"
	"github.com/1broseidon/gridsnap/internal/config"
	"github.com/1broseidon/gridsnap/internal/coordinator"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/hotkeys"
	"github.com/1broseidon/gridsnap/internal/ipc"
	"github.com/1broseidon/gridsnap/internal/layoutstore"
	"github.com/1broseidon/gridsnap/internal/listeners"
	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/1broseidon/gridsnap/internal/runtimepath"
	"github.com/charmbracelet/log"
)

// Options configure Run.
type Options struct {
	// ConfigPath overrides the XDG config location.
	ConfigPath string
	Logger     *log.Logger
	// Verbose pins the logger at debug level, ignoring log_level.
	Verbose bool
}

// picker is the part of the coordinator the daemon talks to after startup.
type picker interface {
	Post(coordinator.Message)
	Status(ctx context.Context) (coordinator.Status, error)
}

// Daemon answers control requests on behalf of a running coordinator.
type Daemon struct {
	configPath    string
	layoutsPath   string
	autostartPath string
	verbose       bool
	logger        *log.Logger
	started       time.Time

	picker     picker
	quit       func()
	executable func() (string, error)

	mu  sync.Mutex
	cfg *config.Config
}

var _ ipc.Handler = (*Daemon)(nil)

// Run starts the daemon and blocks until it is told to exit or ctx is done.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	if wrote, err := config.EnsureExample(configPath); err != nil {
		logger.Warn("could not write example config", "path", configPath, "err", err)
	} else if wrote {
		logger.Info("wrote example config", "path", configPath)
	}

	res, err := config.LoadFromPath(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := res.Config
	keys, err := cfg.ParseHotkeys()
	if err != nil {
		return err
	}
	if !opts.Verbose {
		logger.SetLevel(LogLevel(cfg))
	}

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		return err
	}
	defer backend.Disconnect()

	display, err := backend.ActiveDisplay()
	if err != nil {
		logger.Warn("no active display at startup", "err", err)
	}

	layoutsPath, err := layoutstore.DefaultPath()
	if err != nil {
		return err
	}
	key := layoutstore.Key{Monitor: display.Name, Profile: StartProfile(cfg)}
	if key.Monitor == "" {
		key.Monitor = "default"
	}
	store := layoutstore.Load(layoutsPath, key)
	g := grid.New(grid.Options{
		Key:      key,
		Entry:    store.Get(key),
		Margins:  Margins(cfg),
		WorkArea: display.Usable,
	})

	hk, err := hotkeys.NewHandler(backend)
	if err != nil {
		return err
	}
	coord := coordinator.New(coordinator.Options{
		Backend:  backend,
		Spawner:  listeners.NewSpawner(backend, g, hk, logger.WithPrefix("listeners")),
		Grid:     g,
		Store:    store,
		Settings: Settings(cfg),
		Monitor:  key.Monitor,
		Profile:  key.Profile,
		Logger:   logger.WithPrefix("coordinator"),
	})
	if err := registerHotkeys(hk, keys, coord); err != nil {
		return err
	}

	autostartPath, err := autostart.DefaultPath()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := &Daemon{
		configPath:    configPath,
		layoutsPath:   layoutsPath,
		autostartPath: autostartPath,
		verbose:       opts.Verbose,
		logger:        logger,
		started:       time.Now(),
		picker:        coord,
		quit:          backend.Quit,
		executable:    os.Executable,
		cfg:           cfg,
	}
	if err := d.syncAutoStart(cfg.AutoStart); err != nil {
		logger.Warn("failed to sync autostart entry", "err", err)
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return err
	}
	server := ipc.NewServer(socketPath, d, logger.WithPrefix("ipc"))
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	watcher, err := config.NewWatcher(configPath, d.apply, logger.WithPrefix("config"))
	if err != nil {
		logger.Warn("config hot reload disabled", "err", err)
	} else {
		go watcher.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go d.handleSignals(ctx, sigCh)

	runErr := make(chan error, 1)
	go func() {
		runErr <- coord.Run(ctx)
		backend.Quit()
	}()

	logger.Info("gridsnap daemon started", "hotkey", keys.Main, "monitor", key.Monitor, "config", configPath)
	backend.EventLoop()
	cancel()

	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("gridsnap daemon stopped")
	return nil
}

func registerHotkeys(hk *hotkeys.Handler, keys config.Hotkeys, out coordinator.Poster) error {
	post := func(kind coordinator.HotkeyKind) func() {
		return func() { out.Post(coordinator.HotkeyPressed{Kind: kind}) }
	}

	if err := hk.Register(keys.Main, post(coordinator.HotkeyMain)); err != nil {
		return err
	}
	if keys.QuickResize != nil {
		if err := hk.Register(*keys.QuickResize, post(coordinator.HotkeyQuickResize)); err != nil {
			return err
		}
	}
	if keys.Maximize != nil {
		if err := hk.Register(*keys.Maximize, post(coordinator.HotkeyMaximize)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Daemon) handleSignals(ctx context.Context, sigCh <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				d.logger.Info("received SIGHUP, reloading config")
				if err := d.Reload(); err != nil {
					d.logger.Warn("config reload failed", "err", err)
				}
			default:
				d.logger.Info("shutting down", "signal", sig)
				d.Shutdown()
				return
			}
		}
	}
}

// Post forwards a control request to the coordinator.
func (d *Daemon) Post(msg coordinator.Message) {
	d.picker.Post(msg)
}

// Status reports the coordinator state along with daemon paths.
func (d *Daemon) Status(ctx context.Context) (ipc.StatusData, error) {
	st, err := d.picker.Status(ctx)
	if err != nil {
		return ipc.StatusData{}, err
	}
	paths := statusPaths{config: d.configPath, layouts: d.layoutsPath}
	return statusData(st, paths, time.Since(d.started)), nil
}

// Reload reads the config file again and applies it.
func (d *Daemon) Reload() error {
	res, err := config.LoadFromPath(d.configPath)
	if err != nil {
		return err
	}
	d.apply(res.Config)
	return nil
}

func (d *Daemon) apply(cfg *config.Config) {
	d.mu.Lock()
	old := d.cfg
	d.cfg = cfg
	d.mu.Unlock()

	if old != nil && hotkeysChanged(old, cfg) {
		d.logger.Warn("hotkey changes take effect after a restart")
	}
	if !d.verbose {
		d.logger.SetLevel(LogLevel(cfg))
	}
	d.picker.Post(coordinator.SettingsChanged{Settings: Settings(cfg)})
	if err := d.syncAutoStart(cfg.AutoStart); err != nil {
		d.logger.Warn("failed to sync autostart entry", "err", err)
	}
	d.logger.Info("config applied", "path", d.configPath)
}

// SetAutoStart records the choice in the config and updates the login entry.
func (d *Daemon) SetAutoStart(enabled bool) error {
	if _, err := config.EnsureExample(d.configPath); err != nil {
		return err
	}
	if err := config.SetAutoStart(d.configPath, enabled); err != nil {
		return err
	}

	d.mu.Lock()
	if d.cfg != nil {
		updated := *d.cfg
		updated.AutoStart = enabled
		d.cfg = &updated
	}
	d.mu.Unlock()

	return d.syncAutoStart(enabled)
}

func (d *Daemon) syncAutoStart(enabled bool) error {
	if autostart.Enabled(d.autostartPath) == enabled {
		return nil
	}
	exe, err := d.executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	return autostart.Set(d.autostartPath, exe, enabled)
}

// Shutdown stops the coordinator and the X event loop.
func (d *Daemon) Shutdown() {
	d.picker.Post(coordinator.Exit{})
	d.quit()
}
