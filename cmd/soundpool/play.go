package main

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Baxi19/soundpool"
)

func init() {
	playCmd.Flags().IntVarP(&loop, "loop", "l", 0, "Repeat count (-1 = forever)")
	playCmd.Flags().Float32VarP(&rate, "rate", "r", 1.0, "Playback rate [0.5, 2.0]")
	playCmd.Flags().Float32VarP(&volume, "volume", "v", 1.0, "Stereo gain [0, 1]")
	playCmd.Flags().DurationVarP(&wait, "wait", "w", 5*time.Second, "How long to keep playing before exiting")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <clip> [<clip>...]",
	Short: "Load clips into a pool and play them",
	Args:  cobra.MinimumNArgs(1),
	Run:   play,
}
var loop int
var rate float32
var volume float32
var wait time.Duration

func play(_ *cobra.Command, args []string) {
	cfg := soundpool.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = soundpool.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("error loading config (%v)", err)
		}
	}
	registry := soundpool.NewRegistry(cfg)
	defer registry.TeardownAll()

	handle := registry.CreatePool(soundpool.StreamTypeMusic, len(args))
	if handle < 0 {
		logrus.Fatalf("pool creation rejected")
	}
	pool, err := registry.Pool(handle)
	if err != nil {
		logrus.Fatalf("error addressing pool [%d] (%v)", handle, err)
	}

	var wg sync.WaitGroup
	for _, clip := range args {
		wg.Add(1)
		uri := clip
		pool.LoadURI(uri, 1, func(soundID int32, err error) {
			defer wg.Done()
			if err != nil {
				logrus.Errorf("error loading [%s] (%v)", uri, err)
				return
			}
			if soundID < 0 {
				logrus.Errorf("[%s] rejected by mixer (%d)", uri, soundID)
				return
			}
			pool.SetVolume(0, soundID, volume, volume, nil)
			pool.Play(soundID, loop, rate, func(streamID int32) {
				logrus.Infof("playing [%s] on stream [%d]", uri, streamID)
			})
		})
	}
	wg.Wait()
	time.Sleep(wait)
}
