// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package adminview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mereles/electiond/apiclient"
	"github.com/mereles/electiond/models"
	"github.com/mereles/electiond/tally"
)

// API is the slice of the election service this view consumes.
// *apiclient.Client satisfies it.
type API interface {
	GetElectionStats(ctx context.Context) (models.ElectionStats, error)
	GetAllCandidates(ctx context.Context) ([]models.Candidate, error)
	GetResults(ctx context.Context) ([]models.CandidateResult, error)
	StartElection(ctx context.Context, name string) error
	EndElection(ctx context.Context) (models.EndElectionResponse, error)
	ResetElection(ctx context.Context, name string) (models.ResetElectionResponse, error)
}

// Action identifies a mutating operation awaiting confirmation.
type Action string

const (
	ActionStart Action = "start"
	ActionEnd   Action = "end"
	ActionReset Action = "reset"
)

var (
	ErrBusy         = errors.New("an action is already in flight")
	ErrNotConfirmed = errors.New("action has not been confirmed")
	ErrClosed       = errors.New("view has been closed")
)

// Banner lifetimes. Vars so tests can shorten them.
var (
	startBannerTTL = 5 * time.Second
	endBannerTTL   = 8 * time.Second
	resetBannerTTL = 8 * time.Second
)

// User-facing messages for classified failures. The pre-flight checks
// and the classified server rejections use the same wording.
const (
	msgNoCandidates = "Add at least one candidate before starting the election"
	msgNoVoters     = "Register at least one voter before starting the election"
	msgNotAdmin     = "You are not authorized to manage this election"
	msgGeneric      = "Something went wrong. Please try again."
)

// Snapshot is the refreshed election status the dashboard renders.
type Snapshot struct {
	State           models.ElectionState
	Name            string
	TotalCandidates int
	TotalVoters     int
	TotalVotes      int
	TurnoutPercent  int
	Candidates      []models.Candidate
	Results         []models.CandidateResult
	Winner          *models.WinnerOutcome
}

// View holds the admin dashboard's state: the latest snapshot, banner
// messages, the pending confirmation and the in-flight flag. Safe for
// use from a refresh ticker alongside user-driven actions.
type View struct {
	api API

	mu            sync.Mutex
	snap          Snapshot
	nameInput     string
	pending       Action
	inFlight      bool
	errorBanner   string
	successBanner string
	bannerTimer   *time.Timer
	closed        bool
}

func New(api API) *View {
	return &View{api: api}
}

// Refresh rebuilds the snapshot from the server. The candidate list, not
// the stats payload, is the ground truth for the candidate count (stats
// may be stale). When the election has ended the results are fetched
// too; a results failure is logged and leaves the results empty rather
// than failing the whole refresh.
func (v *View) Refresh(ctx context.Context) (Snapshot, error) {
	stats, err := v.api.GetElectionStats(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch election stats: %w", err)
	}

	candidates, err := v.api.GetAllCandidates(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	snap := Snapshot{
		State:           stats.State(),
		Name:            stats.Name,
		TotalCandidates: len(candidates),
		TotalVoters:     stats.RegisteredVoterCount,
		TotalVotes:      stats.TotalVotes,
		TurnoutPercent:  tally.Turnout(stats.TotalVotes, stats.RegisteredVoterCount),
		Candidates:      candidates,
	}

	if snap.State == models.StateEnded {
		results, err := v.api.GetResults(ctx)
		if err != nil {
			// Degrade gracefully: the page stays usable without results.
			slog.Warn("failed to fetch results", "error", err)
		} else {
			snap.Results = results
			snap.Winner = tally.DetermineWinner(results)
		}
	}

	v.mu.Lock()
	v.snap = snap
	v.mu.Unlock()

	return snap, nil
}

// Snapshot returns the last refreshed snapshot.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// targetState maps each action to the election state it transitions into.
func targetState(action Action) (models.ElectionState, bool) {
	switch action {
	case ActionStart:
		return models.StateActive, true
	case ActionEnd:
		return models.StateEnded, true
	case ActionReset:
		return models.StateNotStarted, true
	}
	return 0, false
}

// CanStart reports whether the start control is enabled.
func (v *View) CanStart() bool {
	return models.CanTransition(v.Snapshot().State, models.StateActive)
}

// CanEnd reports whether the end control is enabled.
func (v *View) CanEnd() bool {
	return models.CanTransition(v.Snapshot().State, models.StateEnded)
}

// CanReset reports whether the reset control is enabled.
func (v *View) CanReset() bool {
	return models.CanTransition(v.Snapshot().State, models.StateNotStarted)
}

// Confirm opens the confirmation step for an action. Only one action can
// await confirmation at a time, and the action must be valid for the
// current election state.
func (v *View) Confirm(action Action) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}
	if v.inFlight {
		return ErrBusy
	}
	if v.pending != "" && v.pending != action {
		return fmt.Errorf("action %q is already awaiting confirmation", v.pending)
	}

	to, ok := targetState(action)
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	if !models.CanTransition(v.snap.State, to) {
		return fmt.Errorf("action %q is not available while the election is %s", action, v.snap.State)
	}

	v.pending = action
	return nil
}

// Cancel dismisses a pending confirmation. Ignored while a call is in
// flight.
func (v *View) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.inFlight {
		v.pending = ""
	}
}

// Pending returns the action awaiting confirmation, if any.
func (v *View) Pending() Action {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// InFlight reports whether a mutating call is outstanding.
func (v *View) InFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight
}

// StartElection starts the election. Requires a confirmed start action.
// Pre-flight checks refuse locally, before any network call, when the
// snapshot shows no candidates or no voters; the server performs the
// authoritative check and its rejection is classified the same way.
func (v *View) StartElection(ctx context.Context, name string) error {
	if err := v.begin(ActionStart); err != nil {
		return err
	}
	defer v.finish()

	snap := v.Snapshot()
	if snap.TotalCandidates == 0 {
		v.setError(msgNoCandidates)
		return errors.New(msgNoCandidates)
	}
	if snap.TotalVoters == 0 {
		v.setError(msgNoVoters)
		return errors.New(msgNoVoters)
	}

	if err := v.api.StartElection(ctx, name); err != nil {
		v.setError(Classify(err))
		return err
	}

	v.refreshAfterAction(ctx)
	v.setSuccess("Election started successfully", startBannerTTL)
	return nil
}

// EndElection ends the active election. Requires a confirmed end action.
// The success banner is composed from the server's message plus an
// archive note and any warning the response carries.
func (v *View) EndElection(ctx context.Context) error {
	if err := v.begin(ActionEnd); err != nil {
		return err
	}
	defer v.finish()

	resp, err := v.api.EndElection(ctx)
	if err != nil {
		v.setError(Classify(err))
		return err
	}

	msg := resp.Message
	if resp.Data.Archived {
		msg += fmt.Sprintf(" Results archived as election #%d.", resp.Data.ElectionNumber)
	}
	if resp.Warning != "" {
		msg += " Warning: " + resp.Warning
	}

	v.refreshAfterAction(ctx)
	v.setSuccess(msg, endBannerTTL)
	return nil
}

// ResetElection resets an ended election under a new name. Requires a
// confirmed reset action. A blank name falls back to the default
// placeholder; the name input is cleared on success.
func (v *View) ResetElection(ctx context.Context, name string) error {
	if err := v.begin(ActionReset); err != nil {
		return err
	}
	defer v.finish()

	if strings.TrimSpace(name) == "" {
		name = models.DefaultElectionName
	}

	resp, err := v.api.ResetElection(ctx, name)
	if err != nil {
		v.setError(Classify(err))
		return err
	}

	v.refreshAfterAction(ctx)
	v.setSuccess(resp.Message, resetBannerTTL)

	v.mu.Lock()
	v.nameInput = ""
	v.mu.Unlock()
	return nil
}

// SetNameInput records the new-election name typed by the admin.
func (v *View) SetNameInput(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nameInput = name
}

// NameInput returns the current new-election name input.
func (v *View) NameInput() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.nameInput
}

// ErrorBanner returns the current error banner, empty when none.
func (v *View) ErrorBanner() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errorBanner
}

// SuccessBanner returns the current success banner, empty when none.
func (v *View) SuccessBanner() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.successBanner
}

// DismissError clears the error banner.
func (v *View) DismissError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorBanner = ""
}

// Close tears the view down, stopping any pending banner timer so it
// never fires against a dead view.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.bannerTimer != nil {
		v.bannerTimer.Stop()
		v.bannerTimer = nil
	}
}

// begin enters the shared mutation pattern: the action must be the
// confirmed one, nothing else may be in flight, and prior banners are
// cleared.
func (v *View) begin(action Action) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}
	if v.inFlight {
		return ErrBusy
	}
	if v.pending != action {
		return ErrNotConfirmed
	}

	v.inFlight = true
	v.errorBanner = ""
	v.successBanner = ""
	if v.bannerTimer != nil {
		v.bannerTimer.Stop()
		v.bannerTimer = nil
	}
	return nil
}

func (v *View) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight = false
	v.pending = ""
}

// refreshAfterAction refreshes the snapshot after a successful mutation.
// The mutation already succeeded, so a refresh failure is only logged.
func (v *View) refreshAfterAction(ctx context.Context) {
	if _, err := v.Refresh(ctx); err != nil {
		slog.Warn("failed to refresh after action", "error", err)
	}
}

func (v *View) setError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorBanner = msg
}

// setSuccess shows a success banner that clears itself after ttl. The
// timer is tied to the view: replaced banners stop the old timer and
// Close stops the last one.
func (v *View) setSuccess(msg string, ttl time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.successBanner = msg
	if v.bannerTimer != nil {
		v.bannerTimer.Stop()
	}
	v.bannerTimer = time.AfterFunc(ttl, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if !v.closed && v.successBanner == msg {
			v.successBanner = ""
		}
	})
}

// Classify maps a server or transport error to the user-facing message
// the dashboard shows. Structured codes are preferred; the message
// substrings are a compatibility fallback for servers that predate
// error codes. Unrecognized messages pass through verbatim.
func Classify(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case models.CodeNoCandidates:
			return msgNoCandidates
		case models.CodeNoVoters:
			return msgNoVoters
		case models.CodeUnauthorized:
			return msgNotAdmin
		}

		msg := apiErr.Message
		switch {
		case strings.Contains(msg, models.MsgNoCandidates):
			return msgNoCandidates
		case strings.Contains(msg, models.MsgNoVoters):
			return msgNoVoters
		case strings.Contains(msg, models.MsgNotAdmin):
			return msgNotAdmin
		case msg != "":
			return msg
		}
		return msgGeneric
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return msgGeneric
}
