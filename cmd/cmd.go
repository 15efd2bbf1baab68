// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the database and config file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// credsCommand manages stored Spotify credentials.
func credsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "creds",
		Aliases: []string{"credentials"},
		Usage:   "Manage Spotify API credentials",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Store client credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "client-id",
						Usage:    "Spotify client ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "client-secret",
						Usage:    "Spotify client secret",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "ttl-hours",
						Usage: "Hours until the stored credentials expire (0 = never)",
					},
				},
				Action: r.CredsSet,
			},
			{
				Name:   "test",
				Usage:  "Verify stored credentials against the token endpoint",
				Action: r.CredsTest,
			},
			{
				Name:   "clear",
				Usage:  "Remove stored credentials and cached tokens",
				Action: r.CredsClear,
			},
		},
	}
}

// lookupCommand resolves videos to catalog candidates.
func lookupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Match YouTube videos to catalog tracks",
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name: "videos",
				Min:  0,
				Max:  -1,
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read video links or IDs from a file, one per line",
			},
			&cli.BoolFlag{
				Name:  "fallback",
				Usage: "Automatically run the description fallback when offered",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the best match's ISRC to the clipboard",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "save",
				Aliases: []string{"o"},
				Usage:   "Write CSV and JSON reports with the given base name",
			},
		},
		Action: r.Lookup,
	}
}

// fetchCommand fetches full metadata for a single catalog resource.
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch full metadata for a catalog link or ID",
		Commands: []*cli.Command{
			{
				Name:  "track",
				Usage: "Fetch track metadata (ISRC, duration, features)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy the ISRC to the clipboard",
					},
				},
				Action: r.FetchTrack,
			},
			{
				Name:  "album",
				Usage: "Fetch album metadata (UPC, label, track count)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy the UPC to the clipboard",
					},
				},
				Action: r.FetchAlbum,
			},
		},
	}
}

// searchCommand searches the catalog directly.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog",
		Commands: []*cli.Command{
			{
				Name:  "track",
				Usage: "Search for tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SearchTracks,
			},
			{
				Name:  "album",
				Usage: "Search for albums",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SearchAlbums,
			},
		},
	}
}

// historyCommand inspects the search history ring.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show or clear recent searches",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
		Commands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Remove all history entries",
				Action: r.HistoryClear,
			},
		},
	}
}

// statsCommand summarizes fetched track metadata.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summarize fetched tracks (decades, artists, duration)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Stats,
		Commands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Remove recorded track statistics",
				Action: r.StatsClear,
			},
		},
	}
}

// serveCommand runs the HTTP message bridge.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP bridge for browser clients",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive lookups.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for video lookups",
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name: "videos",
				Min:  0,
				Max:  -1,
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read video links or IDs from a file, one per line",
			},
		},
		Action: r.TUI,
	}
}
