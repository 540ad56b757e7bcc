package dnsconf

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates the snapshots of paths whenever the files change, so
// the next load re-reads them. Directories are watched rather than files
// since editors and package managers usually replace the file. Watching
// stops when ctx is done.
func (c *Cache) Watch(ctx context.Context, paths ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		p = filepath.Clean(p)
		watched[p] = true
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return err
		}
		dirs[dir] = true
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				name := filepath.Clean(ev.Name)
				if watched[name] && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					log.Debugf("%s changed (%v), invalidating", name, ev.Op)
					c.Invalidate(name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Errorf("watching configuration files: %v", err)
			}
		}
	}()
	return nil
}
