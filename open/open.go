// Package open hands a resolved video to the program that can play it.
package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/key"
	"github.com/ghie29/avmango/log"
	"github.com/spf13/viper"
)

// ErrUnplayable is returned for videos without a media URL.
var ErrUnplayable = errors.New("video has no playable media")

// Target is what gets launched for a video.
type Target struct {
	URL string
	// App is empty when the system default handler should be used.
	App string
}

// For picks the launch target. Direct files and HLS playlists go to the
// media player; embed pages only work in a browser.
func For(p *catalog.Playable, player string) (Target, error) {
	if p == nil || !p.Playable() {
		return Target{}, ErrUnplayable
	}

	switch p.Media {
	case catalog.MediaDirect, catalog.MediaHLS:
		return Target{URL: p.VideoURL, App: player}, nil
	case catalog.MediaEmbed:
		return Target{URL: p.VideoURL}, nil
	default:
		return Target{}, fmt.Errorf("unknown media kind %q", p.Media)
	}
}

// Play launches the configured player, or the browser for embeds, and waits for it.
func Play(p *catalog.Playable) error {
	target, err := For(p, viper.GetString(key.Player))
	if err != nil {
		return err
	}

	log.WithField("media", p.Media).Infof("opening %s", target.URL)
	if target.App == "" {
		return Start(target.URL)
	}
	return RunWith(target.URL, target.App)
}

// Start opens input with the system handler without waiting.
func Start(input string) error {
	cmd, err := systemCommand(input)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// RunWith opens input with app and waits for it to exit.
func RunWith(input, app string) error {
	cmd, err := appCommand(input, app)
	if err != nil {
		return err
	}
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	return cmd.Run()
}

func unsupported() error {
	return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
}

func systemCommand(input string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
	case constant.Darwin:
		return exec.Command("open", input), nil
	case constant.Linux:
		return exec.Command("xdg-open", input), nil
	case constant.Android:
		return exec.Command("termux-open", input), nil
	}
	return nil, unsupported()
}

func appCommand(input, app string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case constant.Windows:
		// start treats & as a command separator
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(input, "&", "^&")), nil
	case constant.Darwin:
		if _, err := exec.LookPath(app); err == nil {
			return exec.Command(app, input), nil
		}
		return exec.Command("open", "-a", app, input), nil
	case constant.Linux, constant.Android:
		return exec.Command(app, input), nil
	}
	return nil, unsupported()
}
