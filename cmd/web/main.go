package main

import (
	_ "embed"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/toycatch/internal/config"
	gameconfig "github.com/tomz197/toycatch/internal/loop/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "toycatch-web"})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	settings, err := gameconfig.Resolve()
	if err != nil {
		logger.Fatal("Bad round settings", "err", err)
	}

	page := renderPage(htmlPage, sshHost, settings)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}

// renderPage fills the landing page placeholders.
func renderPage(page, sshHost string, settings gameconfig.Settings) string {
	var rows strings.Builder
	for i, d := range gameconfig.Difficulties() {
		tuning := d.Tuning()
		fmt.Fprintf(&rows, "<tr><td>%d</td><td>%s</td><td>%.1f</td><td>%.1fs</td></tr>\n",
			i+1, d, tuning.DropSpeed, tuning.SpawnInterval.Seconds())
	}

	penalty := "off"
	if settings.MissPenalty {
		penalty = "on"
	}

	return strings.NewReplacer(
		"{{.SSHHost}}", html.EscapeString(sshHost),
		"{{.Difficulties}}", rows.String(),
		"{{.RoundSeconds}}", fmt.Sprint(settings.RoundSeconds),
		"{{.MissPenalty}}", penalty,
	).Replace(page)
}
