package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/remote"
	"github.com/arnold/visiongoals/internal/services"
	"github.com/arnold/visiongoals/internal/storage"
)

var errNotConfigured = errors.New("supabase is not configured; run `visiongoals configure-remote <url> <key>`")

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Back up all local goals to Supabase",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		report, err := d.sync.Push(context.Background())
		if errors.Is(err, services.ErrRemoteNotConfigured) {
			return errNotConfigured
		}
		if err != nil {
			return err
		}
		for _, item := range report.Items {
			if item.Pushed {
				fmt.Printf("pushed  %s  %s\n", item.ID, item.Title)
			} else {
				fmt.Printf("failed  %s  %s: %s\n", item.ID, item.Title, item.Error)
			}
		}
		if !report.OK {
			return fmt.Errorf("push stopped after %d of %d goals (%d not attempted)", report.Pushed, report.Total, report.Skipped)
		}
		fmt.Printf("%d goals backed up\n", report.Pushed)
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local goals with the Supabase copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		res, err := d.sync.Pull(context.Background())
		if errors.Is(err, services.ErrRemoteNotConfigured) {
			return errNotConfigured
		}
		if err != nil {
			return err
		}
		if !res.Replaced {
			fmt.Println("no goals found in cloud storage; local goals unchanged")
			return nil
		}
		fmt.Printf("%d goals restored from cloud storage\n", res.Count)
		return nil
	},
}

var configureRemoteCmd = &cobra.Command{
	Use:   "configure-remote <url> <key>",
	Short: "Store Supabase credentials",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds := storage.Credentials{URL: args[0], Key: args[1]}
		if !creds.Complete() {
			return errors.New("both URL and API key are required")
		}
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		if err := d.store.SetCredentials(creds); err != nil {
			return err
		}
		status := remote.Status(creds, models.Now())
		fmt.Printf("saved credentials for %s", status.URL)
		if status.KeyRole != "" {
			fmt.Printf(" (role %s)", status.KeyRole)
		}
		fmt.Println()
		for _, w := range status.Warnings {
			fmt.Println("warning:", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd, pullCmd, configureRemoteCmd)
}
