package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	readyMarker  = "serving on port"
	readyTimeout = 30 * time.Second
	appDirName   = "thesis-hand"
)

func main() {
	logging, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	root := &cli.Command{
		Name:  "thesis-desktop",
		Usage: "Startet den Server lokal mit eingebetteter Datenbank und öffnet die Oberfläche im Browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: defaultServerBinary(), Usage: "path to the server binary"},
			&cli.StringFlag{Name: "port", Value: "5000", Usage: "local HTTP port"},
			&cli.StringFlag{Name: "data-dir", Usage: "directory for the SQLite database (default: user config dir)"},
			&cli.BoolFlag{Name: "no-browser", Usage: "do not open the system browser"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			dataDir := c.String("data-dir")
			if dataDir == "" {
				base, err := os.UserConfigDir()
				if err != nil {
					return fmt.Errorf("resolve config dir: %w", err)
				}
				dataDir = filepath.Join(base, appDirName)
			}
			return run(ctx, logging, launchOptions{
				Server:      c.String("server"),
				Port:        c.String("port"),
				DataDir:     dataDir,
				OpenBrowser: !c.Bool("no-browser"),
			})
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := root.Run(ctx, os.Args); err != nil {
		logging.Fatal("Desktop launcher failed", zap.Error(err))
	}
}

type launchOptions struct {
	Server      string
	Port        string
	DataDir     string
	OpenBrowser bool
}

// serverEnv erzwingt Desktop-Modus und SQLite für den Kindprozess.
func serverEnv(base []string, opts launchOptions) []string {
	return append(base,
		"IS_DESKTOP=true",
		"HTTP_PORT="+opts.Port,
		"SQLITE_PATH="+filepath.Join(opts.DataDir, "database.db"),
	)
}

func run(ctx context.Context, logging *zap.Logger, opts launchOptions) error {
	if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, opts.Server)
	cmd.Env = serverEnv(os.Environ(), opts)
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = 15 * time.Second

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start server %s: %w", opts.Server, err)
	}
	logging.Info("Server started", zap.Int("pid", cmd.Process.Pid), zap.String("data_dir", opts.DataDir))

	ready := make(chan struct{})
	go watchOutput(pr, os.Stdout, ready)

	exited := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		pw.Close()
		exited <- err
	}()

	url := "http://localhost:" + opts.Port
	select {
	case <-ready:
		logging.Info("Server is ready", zap.String("url", url))
	case <-time.After(readyTimeout):
		logging.Warn("No readiness message from server, opening UI anyway", zap.Duration("waited", readyTimeout))
	case err := <-exited:
		return fmt.Errorf("server exited before becoming ready: %v", err)
	}

	if opts.OpenBrowser {
		if err := openBrowser(url); err != nil {
			logging.Warn("Could not open browser", zap.String("url", url), zap.Error(err))
		}
	}

	err := <-exited
	if ctx.Err() != nil {
		logging.Info("Server stopped")
		return nil
	}
	return err
}

// watchOutput reicht die Serverausgabe durch und schließt ready beim ersten Auftreten der Startmeldung.
func watchOutput(r io.Reader, out io.Writer, ready chan<- struct{}) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	signalled := false
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(out, line)
		if !signalled && strings.Contains(line, readyMarker) {
			close(ready)
			signalled = true
		}
	}
	// Rest verwerfen, damit der Kindprozess nicht blockiert
	_, _ = io.Copy(io.Discard, r)
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func openBrowser(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Start()
}

// defaultServerBinary sucht den Server neben dem Launcher.
func defaultServerBinary() string {
	name := "thesis-hand"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), name)
	}
	return name
}
