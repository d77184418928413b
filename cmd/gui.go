package cmd

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ytget/music-manager/internal/config"
	"github.com/ytget/music-manager/internal/job"
	"github.com/ytget/music-manager/internal/platform"
	"github.com/ytget/music-manager/internal/ui"
)

// AppID identifies the app for fyne preferences
const AppID = "com.ytget.music-manager"

func runGUI(cmd *cobra.Command, _ []string) error {
	myApp := app.NewWithID(AppID)

	// Remembered preferences, flags given on this run win
	config.NewSettings(myApp).Merge(conf, pinnedSettings(cmd))
	if err := conf.Validate(); err != nil {
		return err
	}

	if dir, err := platform.AbsDir(conf.DownloadDir); err == nil {
		logrus.WithField("download_dir", dir).Info("music-manager starting")
	}
	if err := platform.CreateDirectoryIfNotExists(conf.DownloadDir); err != nil {
		logrus.WithError(err).Warn("failed to ensure download dir")
	}

	myWindow := myApp.NewWindow(ui.AppTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Ticks are handed to the fyne event loop so callbacks may touch widgets
	sched := job.NewTickerScheduler(fyne.Do)
	defer sched.Close()

	ctx := cmd.Context()
	ui.NewRootUI(ctx, myWindow, newSupervisor(conf, sched))

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(myApp.Quit)
		case <-stopped:
		}
	}()

	myWindow.ShowAndRun()
	return nil
}
