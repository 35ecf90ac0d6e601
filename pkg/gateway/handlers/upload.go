package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/voicelane/voice-agent/pkg/core"
	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

// UploadHandler saves a recorded audio file to the local upload directory.
type UploadHandler struct {
	Config config.Config
	Logger *slog.Logger
}

func (h UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxBodyBytes)

	data, header, err := readMultipartFile(r, "file", h.Config.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Prefix with a fresh UUID so concurrent uploads of the same recording
	// name never collide on disk.
	name := filepath.Base(header.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "audio"
	}
	dst := filepath.Join(h.Config.UploadDir, uuid.NewString()+"_"+name)

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		if h.Logger != nil {
			h.Logger.Error("upload write failed", "path", dst, "err", err)
		}
		writeError(w, r, core.NewAPIError("failed to store upload"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filename":     header.Filename,
		"content_type": header.Header.Get("Content-Type"),
		"size":         len(data),
	})
}
