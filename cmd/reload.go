package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shencore/shen/pkg/config"
)

// credentialSetter is implemented by *search.Client.
type credentialSetter interface {
	SetCredentials(apiKey, cx string)
}

// configReloader watches the config file and pushes new search credentials
// into the running client. Sessions keep running across reloads.
type configReloader struct {
	path    string
	target  credentialSetter
	watcher *fsnotify.Watcher
	settle  time.Duration
}

func newConfigReloader(path string, target credentialSetter) (*configReloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching config file %s: %w", path, err)
	}
	webLogger.Infof("Watching config file for changes: %s", path)
	return &configReloader{
		path:    path,
		target:  target,
		watcher: watcher,
		settle:  100 * time.Millisecond,
	}, nil
}

func (r *configReloader) Close() error {
	return r.watcher.Close()
}

// Run reloads on file changes and on SIGHUP until ctx is done.
func (r *configReloader) Run(ctx context.Context) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			webLogger.Infof("Received SIGHUP, reloading configuration...")
			r.reloadAndLog()
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.handle(event)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			webLogger.Warnf("config file watcher error: %v", err)
		}
	}
}

func (r *configReloader) handle(event fsnotify.Event) {
	// Editors often save with an atomic rename, so every kind of change counts.
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	webLogger.Infof("Config file changed: %s (event: %s), reloading configuration...", event.Name, event.Op.String())

	if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
		time.Sleep(2 * r.settle)
		if _, err := os.Stat(r.path); os.IsNotExist(err) {
			webLogger.Infof("Config file was removed and not replaced, skipping reload")
			return
		}
		// The replaced file is a new inode; watch it again.
		if err := r.watcher.Add(r.path); err != nil {
			webLogger.Warnf("failed to re-add config file to watcher: %v", err)
		}
	} else {
		time.Sleep(r.settle)
	}

	r.reloadAndLog()
}

func (r *configReloader) reloadAndLog() {
	if err := r.reload(); err != nil {
		webLogger.Errorf("failed to reload configuration: %v", err)
		return
	}
	webLogger.Infof("Configuration reloaded successfully")
}

// reload reads the file and swaps credentials. Invalid files leave the
// current credentials in place.
func (r *configReloader) reload() error {
	cfg, err := config.LoadConfig(r.path)
	if err != nil {
		return fmt.Errorf("loading new config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.target.SetCredentials(cfg.Google.APIKey, cfg.Google.CX)
	return nil
}
