// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded example",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles Spotify authentication.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "token",
						Usage: "Use an existing access token instead of the browser flow",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistsCommand handles playlist browsing.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Browse Spotify playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists for the authenticated user",
				Flags: []cli.Flag{
					configFlag(),
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
				Action: r.PlaylistsList,
			},
			{
				Name:  "tracks",
				Usage: "Fetch a playlist's tracks page by page and cache them",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Tracks fetched per page",
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
				},
				Action: r.PlaylistTracks,
			},
		},
	}
}

// moveCommand commits a reorder of one or more tracks.
func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "move",
		Usage: "Move tracks within a playlist and commit the reorder to Spotify",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "positions",
				Usage:    "Comma-separated positions of the tracks to move (e.g. 1,3,4)",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "insert-before",
				Usage:    "Position to insert before, in current (pre-removal) coordinates",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "Use the cached snapshot instead of refetching",
			},
		},
		Action: r.Move,
	}
}

// removeCommand commits a track removal.
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "remove",
		Usage: "Remove tracks from a playlist and commit the removal to Spotify",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "uri",
				Usage: "Track URI to remove (all occurrences unless --positions is given)",
			},
			&cli.StringFlag{
				Name:  "positions",
				Usage: "Comma-separated positions qualifying which occurrences to remove",
			},
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "Use the cached snapshot instead of refetching",
			},
		},
		Action: r.Remove,
	}
}

// insertCommand inserts a track at one or more marker positions.
func insertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "insert",
		Usage: "Insert a track at each marked position in one batch",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "uri",
				Usage:    "Track URI to insert",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "at",
				Usage:    "Comma-separated marker positions (e.g. 3,7)",
				Required: true,
			},
		},
		Action: r.Insert,
	}
}

// cacheCommand inspects and manages locally cached snapshots.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect locally cached playlist snapshots",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the cached snapshot for a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
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
				},
				Action: r.CacheShow,
			},
			{
				Name:  "splices",
				Usage: "Show the recorded reorder history for a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
				},
				Action: r.CacheSplices,
			},
			{
				Name:  "delete",
				Usage: "Delete the cached snapshot for a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
				},
				Action: r.CacheDelete,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist editing",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
