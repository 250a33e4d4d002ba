package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/ctrlc"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	flagHost string
	flagPort string
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	addrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func printBanner(title, addr string) {
	fmt.Fprintln(os.Stderr, bannerStyle.Render(title), addrStyle.Render("http://"+addr))
}

// listenAndServe runs srv until ctx is cancelled or an interrupt arrives,
// then drains in-flight connections before returning.
func listenAndServe(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := ctrlc.Default.Run(gctx, func() error {
			<-gctx.Done()
			return gctx.Err()
		})
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if serr := srv.Shutdown(sctx); serr != nil {
			return serr
		}
		var interrupt ctrlc.ErrorCtrlC
		if errors.As(err, &interrupt) {
			log.Warn("interrupt received, shutting down")
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
