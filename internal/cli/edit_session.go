package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	cliadapter "github.com/example/smartqa/internal/adapters/cli"
	"github.com/example/smartqa/internal/ports/primary"
)

// runEditSession drives a step edit session from line commands on in.
// End of input discards the draft.
func runEditSession(ctx context.Context, svc primary.ScenarioService, scenarioID string, fields primary.ScenarioFields, in io.Reader, out io.Writer) error {
	session, err := svc.BeginEdit(ctx, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to start edit session: %w", err)
	}
	report := cliadapter.NewReportAdapter(out)

	fmt.Fprintf(out, "Editing %s (type \"help\" for commands)\n", scenarioID)
	report.Steps(session.Steps())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "edit> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		var opErr error
		switch verb {
		case "help", "?":
			fmt.Fprintln(out, "list | add <text> | set <n> <text> | rm <n> | mv <from> <to> | save | discard")
			continue
		case "list", "ls":
			report.Steps(session.Steps())
			continue
		case "add":
			opErr = session.AddStep(rest)
		case "set":
			n, text, _ := strings.Cut(rest, " ")
			var i int
			if i, opErr = stepIndex(n); opErr == nil {
				opErr = session.SetStep(i, strings.TrimSpace(text))
			}
		case "rm":
			var i int
			if i, opErr = stepIndex(rest); opErr == nil {
				opErr = session.RemoveStep(i)
			}
		case "mv":
			from, to, _ := strings.Cut(rest, " ")
			var i, j int
			if i, opErr = stepIndex(from); opErr == nil {
				if j, opErr = stepIndex(strings.TrimSpace(to)); opErr == nil {
					opErr = session.MoveStep(i, j)
				}
			}
		case "save":
			s, err := svc.SaveEdit(ctx, session, fields)
			if err != nil {
				fmt.Fprintf(out, "%s %v\n", color.RedString("✗"), err)
				continue
			}
			report.Success("Saved %s with %d steps", s.ID, len(s.Steps))
			return nil
		case "discard", "quit", "exit":
			svc.DiscardEdit(session)
			report.Warn("Discarded changes to %s", scenarioID)
			return nil
		default:
			opErr = fmt.Errorf("unknown command %q", verb)
		}

		if opErr != nil {
			fmt.Fprintf(out, "%s %v\n", color.RedString("✗"), opErr)
			continue
		}
		report.Steps(session.Steps())
	}

	svc.DiscardEdit(session)
	fmt.Fprintln(out)
	report.Warn("Input closed, discarded changes to %s", scenarioID)
	return scanner.Err()
}

// stepIndex converts a 1-based step number to an index.
func stepIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("step number must be an integer, got %q", s)
	}
	return n - 1, nil
}

