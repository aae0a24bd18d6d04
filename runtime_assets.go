package cardeditor

import (
	"io/fs"

	"github.com/goliatone/go-cardeditor/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the editor stylesheet and the browser runtime that
// forwards widget events over a WebSocket.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(cardeditor.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
