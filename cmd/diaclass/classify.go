package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/diaclass"
	"github.com/fwojciec/diaclass/pipeline"
)

// Run classifies every document in the site navigation.
func (c *CLI) Run(deps *Dependencies) error {
	if len(deps.Config.Repositories) > 0 {
		fmt.Fprintf(deps.Stdout, "Cloning/updating multi-repo repositories into %s ...\n", c.RepoDir)
	}

	progress := func(event pipeline.Event) {
		switch event.Type {
		case pipeline.EventRepository:
			printRepository(deps, event.Repository)
		case pipeline.EventWarning:
			if event.Ref != "" {
				fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", event.Ref, event.Message)
				return
			}
			fmt.Fprintf(deps.Stderr, "warning: %s\n", event.Message)
		case pipeline.EventStarted:
			fmt.Fprintf(deps.Stdout, "Found %d file(s) in the navigation.\n", event.Total)
		case pipeline.EventDocumentStarted:
			fmt.Fprintf(deps.Stdout, "\nProcessing file: %s\n", event.Ref)
		case pipeline.EventDocument:
			printResult(deps, event.Result)
		}
	}

	report, err := deps.Pipeline.Run(deps.Ctx, deps.Config, progress)
	if report == nil {
		if diaclass.ErrorCode(err) == diaclass.ENOTFOUND {
			fmt.Fprintln(deps.Stdout, "No files found in the navigation section.")
			return nil
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, "\nFinal aggregated results:")
	if werr := writeJSON(deps, report); werr != nil {
		return werr
	}

	summary := report.Summary()
	fmt.Fprintf(deps.Stderr, "%d succeeded, %d unparseable, %d failed\n",
		summary[diaclass.StatusSuccess], summary[diaclass.StatusParseFailure], summary[diaclass.StatusRequestFailure])

	return err
}

func printRepository(deps *Dependencies, status *diaclass.RepositoryStatus) {
	if status.Err != nil {
		fmt.Fprintf(deps.Stderr, "%s\n", diaclass.ErrorMessage(status.Err))
		return
	}
	switch status.Action {
	case diaclass.RepositoryCloned:
		fmt.Fprintf(deps.Stdout, "Cloned repository '%s' into %s\n", status.Name, status.Dir)
	case diaclass.RepositoryUpdated:
		fmt.Fprintf(deps.Stdout, "Repository '%s' already exists. Updated.\n", status.Name)
	}
}

func printResult(deps *Dependencies, result *diaclass.Result) {
	switch result.Status {
	case diaclass.StatusSuccess:
		fmt.Fprintln(deps.Stdout, "Response:")
		_ = writeJSON(deps, result.Classification)
	case diaclass.StatusParseFailure:
		fmt.Fprintf(deps.Stderr, "Failed to parse response: %s\n", result.Reason)
		fmt.Fprintf(deps.Stderr, "Raw response:\n%s\n", result.RawResponse)
	case diaclass.StatusRequestFailure:
		fmt.Fprintf(deps.Stderr, "No response received for this file: %s\n", result.Reason)
	}
	if result.Truncated {
		fmt.Fprintln(deps.Stderr, "note: content was truncated to the character limit")
	}
}

func writeJSON(deps *Dependencies, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
