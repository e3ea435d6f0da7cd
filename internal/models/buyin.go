package models

import (
	"time"
)

// RequestStatus represents the state of a buy-in request
type RequestStatus string

const (
	// RequestStatusPending indicates the request is waiting for votes
	RequestStatusPending RequestStatus = "pending"

	// RequestStatusApproved indicates the request counts toward the requester's balance
	RequestStatusApproved RequestStatus = "approved"

	// RequestStatusRejected indicates the request was voted down
	RequestStatusRejected RequestStatus = "rejected"
)

// IsPending returns true while the request can still be voted on
func (s RequestStatus) IsPending() bool {
	return s == RequestStatusPending
}

// BuyInRequest is a participant's claim to add an amount to their balance
type BuyInRequest struct {
	// ID is the monotonic request identifier
	ID int64

	// SessionID is the session the request belongs to
	SessionID string

	// RequesterID is the identity that asked for the buy-in
	RequesterID string

	// Amount is the requested amount in minor units
	Amount int64

	// Status is the current state of the request
	Status RequestStatus

	// CreatedAt is when the request was made
	CreatedAt time.Time
}

// Decision is a voter's verdict on a request
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid reports whether d is one of the known decisions
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Vote is a participant's decision on a pending request
type Vote struct {
	// RequestID is the request being voted on
	RequestID int64

	// VoterID is the identity casting the vote
	VoterID string

	// Decision is approve or reject
	Decision Decision

	// CreatedAt is when the vote was cast
	CreatedAt time.Time
}

// Tally counts the decisions recorded for one request
type Tally struct {
	Approvals  int
	Rejections int
}
