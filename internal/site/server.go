package site

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/logging"
)

// Serve starts a local HTTP file server for the generated site.
func Serve(dir string, port int, open bool, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d", port)

	if open {
		go openBrowser(url)
	}

	fmt.Printf("Serving map at %s\n", url)
	fmt.Println("Press Ctrl+C to stop.")

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))

	return http.ListenAndServe(addr, logging.AccessMiddleware(logger)(mux))
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
