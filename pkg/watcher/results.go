package watcher

import (
	"github.com/philipparndt/gostruct/pkg/analysis"
	"github.com/philipparndt/gostruct/pkg/model"
)

// WatchResults decodes the result file at path whenever it changes and
// hands complete result fields to deliver. Files that fail to decode are
// logged and skipped, so a half written file never reaches the viewer.
func (fw *FileWatcher) WatchResults(path string, deliver func(*model.ResultField)) error {
	return fw.Watch(path, func(changed string) {
		results, err := analysis.ReadResultsFile(changed)
		if err != nil {
			fw.logger.Warn("ignoring results file", "path", changed, "error", err)
			return
		}
		fw.logger.Info("results file loaded", "path", changed, "solids", len(results.Solids))
		deliver(results)
	})
}
