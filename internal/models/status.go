package models

import "time"

// ComputeStatus derives the auction status from wall-clock time. It is pure
// and idempotent: cancelled is absorbing, everything else follows the
// start/end window. Both the scheduler sweep and read paths use this one
// function so a reader never observes a stale status.
func (a *Auction) ComputeStatus(now time.Time) AuctionStatus {
	if a.Status == AuctionCancelled {
		return AuctionCancelled
	}
	switch {
	case now.Before(a.StartTime):
		return AuctionPending
	case now.After(a.EndTime):
		return AuctionCompleted
	default:
		return AuctionActive
	}
}

// Transition applies ComputeStatus to the record and reports whether the
// status actually changed. Applying it to an already-correct record is a
// no-op.
func (a *Auction) Transition(now time.Time) bool {
	next := a.ComputeStatus(now)
	if next == a.Status {
		return false
	}
	a.Status = next
	return true
}

// InitialStatus returns the status a freshly created auction starts in:
// active when the window already opened, pending otherwise.
func InitialStatus(startTime time.Time, now time.Time) AuctionStatus {
	if !now.Before(startTime) {
		return AuctionActive
	}
	return AuctionPending
}
