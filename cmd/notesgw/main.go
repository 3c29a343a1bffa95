package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tonypeanut/fullstack-notes-full/internal/app"
	"github.com/tonypeanut/fullstack-notes-full/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:   "notesgw",
		Short: "Self-hosted web client for the notes API",
		Long:  "notesgw serves the note-taking UI and keeps a synchronized local mirror of your notes, archived notes and categories against the remote API.",
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New().Run()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("notesgw %s (commit=%s, built=%s, go=%s)\n",
				version.Version, version.Commit, version.BuildDate, version.GoVersion)
		},
	})

	if err := root.Execute(); err != nil {
		log.Fatalf("❌ notesgw failed: %v", err)
	}
}
