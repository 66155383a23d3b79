// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command electionctl is an operator console for an electiond server. It
// drives the same admin view the dashboard uses, so lifecycle actions go
// through the confirmation step and the client-side checks.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/mereles/electiond/adminview"
	"github.com/mereles/electiond/apiclient"
	"github.com/mereles/electiond/models"
	"github.com/mereles/electiond/tally"
)

const usage = `Usage: electionctl [flags] <command> [args]

Commands:
  status                      Show the election dashboard
  start [name]                Start the election
  end                         End the election and archive results
  reset [name]                Reset an ended election
  results                     Show per-candidate tallies (ended elections)
  archives                    List archived elections
  add-candidate <name> [party]  Register a candidate
  register-voter <name>       Register a voter and print their token
  vote <token> <candidate-id> Cast a vote

Flags:
  -url      Server base URL (default http://localhost:4410, env ELECTIOND_URL)
  -key      Admin key (env ELECTIOND_ADMIN_KEY)
  -yes      Skip confirmation prompts
`

func main() {
	godotenv.Load()

	fs := flag.NewFlagSet("electionctl", flag.ExitOnError)
	url := fs.String("url", "", "Server base URL")
	key := fs.String("key", "", "Admin key")
	yes := fs.Bool("yes", false, "Skip confirmation prompts")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	fs.Parse(os.Args[1:])

	if *url == "" {
		*url = os.Getenv("ELECTIOND_URL")
	}
	if *url == "" {
		*url = "http://localhost:4410"
	}
	if *key == "" {
		*key = os.Getenv("ELECTIOND_ADMIN_KEY")
	}

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	client := apiclient.New(*url, *key)
	view := adminview.New(client)
	defer view.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "status":
		err = showStatus(ctx, view)
	case "start":
		err = runLifecycle(ctx, view, adminview.ActionStart, argAt(args, 1), *yes)
	case "end":
		err = runLifecycle(ctx, view, adminview.ActionEnd, "", *yes)
	case "reset":
		err = runLifecycle(ctx, view, adminview.ActionReset, argAt(args, 1), *yes)
	case "results":
		err = showResults(ctx, client)
	case "archives":
		err = showArchives(ctx, client)
	case "add-candidate":
		if len(args) < 2 {
			fail("add-candidate requires a name")
		}
		err = addCandidate(ctx, client, args[1], argAt(args, 2))
	case "register-voter":
		if len(args) < 2 {
			fail("register-voter requires a name")
		}
		err = registerVoter(ctx, client, args[1])
	case "vote":
		if len(args) < 3 {
			fail("vote requires a token and a candidate ID")
		}
		err = castVote(ctx, client, args[1], args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args[0])
		fs.Usage()
		os.Exit(2)
	}

	if err != nil {
		fail(adminview.Classify(err))
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	os.Exit(1)
}

func showStatus(ctx context.Context, view *adminview.View) error {
	snap, err := view.Refresh(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s\n", snap.Name, snap.State)
	fmt.Printf("  Candidates:  %s\n", humanize.Comma(int64(snap.TotalCandidates)))
	fmt.Printf("  Voters:      %s\n", humanize.Comma(int64(snap.TotalVoters)))
	fmt.Printf("  Votes:       %s (%d%% turnout)\n",
		humanize.Comma(int64(snap.TotalVotes)), snap.TurnoutPercent)

	if snap.Winner != nil {
		if snap.Winner.Tie {
			names := make([]string, len(snap.Winner.Candidates))
			for i, c := range snap.Winner.Candidates {
				names[i] = c.Name
			}
			fmt.Printf("  Result:      tie between %s at %s votes\n",
				strings.Join(names, ", "), humanize.Comma(int64(snap.Winner.VoteCount)))
		} else if w := snap.Winner.Winner(); w != nil {
			fmt.Printf("  Winner:      %s with %s votes\n",
				w.Name, humanize.Comma(int64(w.VoteCount)))
		}
	}
	return nil
}

// runLifecycle confirms and runs a start/end/reset through the view, so
// the console gets the same gating as the dashboard.
func runLifecycle(ctx context.Context, view *adminview.View, action adminview.Action, name string, yes bool) error {
	if _, err := view.Refresh(ctx); err != nil {
		return err
	}

	if err := view.Confirm(action); err != nil {
		return err
	}
	if !yes && !promptYes(fmt.Sprintf("Really %s the election?", action)) {
		view.Cancel()
		fmt.Println("Aborted.")
		return nil
	}

	var err error
	switch action {
	case adminview.ActionStart:
		if name == "" {
			name = models.DefaultElectionName
		}
		err = view.StartElection(ctx, name)
	case adminview.ActionEnd:
		err = view.EndElection(ctx)
	case adminview.ActionReset:
		err = view.ResetElection(ctx, name)
	}
	if err != nil {
		return err
	}

	fmt.Println(view.SuccessBanner())
	return nil
}

func promptYes(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func showResults(ctx context.Context, client *apiclient.Client) error {
	results, err := client.GetResults(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No candidates.")
		return nil
	}

	for i, r := range results {
		label := r.Name
		if r.Party != "" {
			label += " (" + r.Party + ")"
		}
		fmt.Printf("  %s  %-30s %s votes (%.2f%%)\n",
			humanize.Ordinal(i+1), label, humanize.Comma(int64(r.VoteCount)), r.VoteShare)
	}

	if outcome := tally.DetermineWinner(results); outcome != nil {
		if outcome.Tie {
			names := make([]string, len(outcome.Candidates))
			for i, c := range outcome.Candidates {
				names[i] = c.Name
			}
			fmt.Printf("Tie between %s at %s votes.\n",
				strings.Join(names, ", "), humanize.Comma(int64(outcome.VoteCount)))
		} else if w := outcome.Winner(); w != nil {
			fmt.Printf("Winner: %s with %s votes.\n", w.Name, humanize.Comma(int64(w.VoteCount)))
		}
	}
	return nil
}

func showArchives(ctx context.Context, client *apiclient.Client) error {
	archives, err := client.GetArchives(ctx)
	if err != nil {
		return err
	}
	if len(archives) == 0 {
		fmt.Println("No archived elections.")
		return nil
	}

	for _, a := range archives {
		fmt.Printf("  #%d  %-25s %s votes from %s voters, archived %s\n",
			a.ElectionNumber, a.Name,
			humanize.Comma(int64(a.TotalVotes)), humanize.Comma(int64(a.TotalVoters)),
			humanize.Time(a.ArchivedAt))
	}
	return nil
}

func addCandidate(ctx context.Context, client *apiclient.Client, name, party string) error {
	id, err := client.AddCandidate(ctx, name, party)
	if err != nil {
		return err
	}
	fmt.Printf("Candidate %q registered with ID %s\n", name, id)
	return nil
}

func registerVoter(ctx context.Context, client *apiclient.Client, name string) error {
	token, err := client.RegisterVoter(ctx, name)
	if err != nil {
		return err
	}
	fmt.Printf("Voter %q registered. Token: %s\n", name, token)
	return nil
}

func castVote(ctx context.Context, client *apiclient.Client, token, candidateID string) error {
	if err := client.CastVote(ctx, token, candidateID); err != nil {
		return err
	}
	fmt.Println("Vote recorded.")
	return nil
}
