package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/groblegark/seasonplan/internal/client"
	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printSeason(season *model.Season) {
	fmt.Printf("ID:          %s\n", season.ID)
	fmt.Printf("Name:        %s\n", season.Name)
	fmt.Printf("Status:      %s\n", season.Status)
	if season.BuyerID != "" {
		fmt.Printf("Buyer:       %s\n", season.BuyerID)
	}
	if season.Description != "" {
		fmt.Printf("Description: %s\n", season.Description)
	}
	if len(season.RequireAttention) > 0 {
		fmt.Printf("Attention:   %s\n", strings.Join(season.RequireAttention, ", "))
	}
	fmt.Printf("Created At:  %s\n", season.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:  %s\n", season.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func printSeasonList(seasons []*model.Season, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tNAME\tBUYER")
	for _, s := range seasons {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Status, s.Name, s.BuyerID)
	}
	w.Flush()
	fmt.Printf("\n%d seasons (%d total)\n", len(seasons), total)
}

func printTaskTable(tasks []*model.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tSTATUS\tLEAD\tAFTER\tRESPONSIBLE\tNAME")
	for _, t := range tasks {
		name := t.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dd\t%s\t%s\t%s\n",
			ui.RenderAccent(t.Order),
			t.ID,
			ui.RenderTaskStatus(t.Status),
			t.LeadTime,
			strings.Join(t.PrecedingTasks, ","),
			strings.Join(t.Responsible, ","),
			name,
		)
	}
	w.Flush()
}

func printTaskDetail(t *model.Task) {
	fmt.Printf("ID:          %s\n", t.ID)
	fmt.Printf("Order:       %s\n", t.Order)
	fmt.Printf("Name:        %s\n", t.Name)
	fmt.Printf("Status:      %s\n", ui.RenderTaskStatus(t.Status))
	fmt.Printf("Lead Time:   %d days\n", t.LeadTime)
	if len(t.PrecedingTasks) > 0 {
		fmt.Printf("After:       %s\n", strings.Join(t.PrecedingTasks, ", "))
	}
	if len(t.Responsible) > 0 {
		fmt.Printf("Responsible: %s\n", strings.Join(t.Responsible, ", "))
	}
	if t.ComputedDates != nil {
		fmt.Printf("Planned:     %s to %s\n",
			t.ComputedDates.Start.Format("2006-01-02"),
			t.ComputedDates.End.Format("2006-01-02"))
	}
	if t.ActualCompletion != nil {
		fmt.Printf("Completed:   %s\n", t.ActualCompletion.Format("2006-01-02"))
	}
	if t.Remarks != "" {
		fmt.Printf("Remarks:     %s\n", t.Remarks)
	}
}

func printTimeline(tasks []*model.Task, resp *client.TimelineResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSTATUS\tSTART\tEND\tNAME")
	for _, t := range tasks {
		start, end := "-", "-"
		if dr, ok := resp.Timeline[t.ID]; ok {
			start = dr.Start.Format("2006-01-02")
			end = dr.End.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ui.RenderAccent(t.Order), ui.RenderTaskStatus(t.Status), start, end, t.Name)
	}
	w.Flush()
	for _, u := range resp.Unresolved {
		fmt.Println(ui.RenderMuted(fmt.Sprintf("unresolved %s (%s): %s", u.Order, u.TaskID, u.Reason)))
	}
}

func printEvents(events []*model.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTOPIC\tTASK\tACTOR")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format(time.RFC3339), e.Topic, e.TaskID, e.Actor)
	}
	w.Flush()
}
