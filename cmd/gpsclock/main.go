package main

import (
	"fmt"
	"log"
	"os"

	// Embedded zone database so the clock keeps local time on hosts
	// without /usr/share/zoneinfo.
	_ "time/tzdata"

	"github.com/urfave/cli/v2"

	"github.com/KD5VMF/GPS-Clock/internal/app"
	"github.com/KD5VMF/GPS-Clock/internal/config"
	"github.com/KD5VMF/GPS-Clock/internal/zone"
)

func main() {
	cliApp := &cli.App{
		Name:  "gpsclock",
		Usage: "GPS-disciplined wall clock (NMEA over serial to MQTT)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the configuration file",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "serial port override, e.g. /dev/ttyUSB0",
			},
			&cli.IntFlag{
				Name:  "baud",
				Usage: "baud rate override",
			},
			&cli.StringFlag{
				Name:  "zone",
				Usage: "time zone override, e.g. America/New_York",
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "run against a simulated receiver instead of a serial port",
			},
		},
		Action: runClock,
		Commands: []*cli.Command{
			{
				Name:  "zones",
				Usage: "print the selectable time zones",
				Action: func(c *cli.Context) error {
					names, err := zone.Catalog()
					if err != nil {
						return err
					}
					for _, n := range names {
						fmt.Println(n)
					}
					return nil
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func runClock(c *cli.Context) error {
	log.Println("starting gpsclock producer (NMEA to MQTT)")

	if err := config.InitGlobal(c.String("config")); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return app.RunClock(app.ClockOptions{
		ConfigPath: c.String("config"),
		Port:       c.String("port"),
		Baud:       c.Int("baud"),
		Zone:       c.String("zone"),
		Mock:       c.Bool("mock"),
	})
}
