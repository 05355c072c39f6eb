package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

// downloadFn is a test seam for netx.DownloadFromPresignedURL.
var downloadFn = netx.DownloadFromPresignedURL

// Export asks the server for a snapshot and saves it under the export dir.
func (a *App) Export(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	url, err := a.api.ExportNotes(ctx)
	if err != nil {
		return a.check(err)
	}

	data, err := downloadFn(ctx, a.api.HTTPClient(), url)
	if err != nil {
		return fmt.Errorf("download export: %w", err)
	}

	dir, err := filex.EnsureSubdDir(a.config.ExportDir)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("notes-%s.json", time.Now().Format("20060102-150405"))
	path, err := filex.WriteFileAtomic(dir, name, data)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Saved to", path)
	return nil
}
