package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goldtix/registry/eventlog"
)

func eventsCmd() *cobra.Command {
	var (
		limit   int
		evtType string
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			sink, err := eventlog.Open(conf.EventDB)
			if err != nil {
				return fmt.Errorf("event database: %w", err)
			}
			defer sink.Close()

			var entries []eventlog.Entry
			if evtType != "" {
				entries, err = sink.ListByType(evtType, limit)
			} else {
				entries, err = sink.List(limit)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tOPERATION\tTYPE\tATTRIBUTES")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.OpID, e.Type, e.Attributes)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events to show")
	cmd.Flags().StringVar(&evtType, "type", "", "only show events of this type")
	return cmd
}
