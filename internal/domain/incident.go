package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IncidentState represents the lifecycle state of an incident
type IncidentState string

const (
	IncidentStateOpen       IncidentState = "open"
	IncidentStateInProgress IncidentState = "in_progress"
	IncidentStateClosed     IncidentState = "closed"
	IncidentStateEscalated  IncidentState = "escalated"
)

// IncidentChannel represents the channel an incident was reported through
type IncidentChannel string

const (
	IncidentChannelPhone  IncidentChannel = "phone"
	IncidentChannelEmail  IncidentChannel = "email"
	IncidentChannelChat   IncidentChannel = "chat"
	IncidentChannelMobile IncidentChannel = "mobile"
)

// IncidentPriority represents the priority of an incident
type IncidentPriority string

const (
	IncidentPriorityLow    IncidentPriority = "low"
	IncidentPriorityMedium IncidentPriority = "medium"
	IncidentPriorityHigh   IncidentPriority = "high"
)

// Valid reports whether the state is one of the known enum values.
func (s IncidentState) Valid() bool {
	switch s {
	case IncidentStateOpen, IncidentStateInProgress, IncidentStateClosed, IncidentStateEscalated:
		return true
	}
	return false
}

// Valid reports whether the channel is one of the known enum values.
func (c IncidentChannel) Valid() bool {
	switch c {
	case IncidentChannelPhone, IncidentChannelEmail, IncidentChannelChat, IncidentChannelMobile:
		return true
	}
	return false
}

// Valid reports whether the priority is one of the known enum values.
func (p IncidentPriority) Valid() bool {
	switch p {
	case IncidentPriorityLow, IncidentPriorityMedium, IncidentPriorityHigh:
		return true
	}
	return false
}

// Incident is a record fetched from the upstream incident-query service.
// Incidents are read-only in this service: they are fetched, aggregated
// and cached, never mutated.
type Incident struct {
	ID           uuid.UUID        `json:"id"`
	Description  string           `json:"description"`
	State        IncidentState    `json:"state"`
	Channel      IncidentChannel  `json:"channel"`
	Priority     IncidentPriority `json:"priority"`
	CreationDate time.Time        `json:"creation_date"`
	UserID       uuid.UUID        `json:"user_id"`
	CompanyID    uuid.UUID        `json:"company_id"`
	CompanyName  *string          `json:"company_name,omitempty"`
	ManagerID    *uuid.UUID       `json:"manager_id,omitempty"`
}

// Validate rejects incidents whose enum fields carry unknown values. The
// aggregators assume every incident lands in exactly one bucket per
// dimension, so out-of-enum records must never enter the system.
func (i Incident) Validate() error {
	if !i.State.Valid() {
		return fmt.Errorf("incident %s has unknown state %q", i.ID, i.State)
	}
	if !i.Channel.Valid() {
		return fmt.Errorf("incident %s has unknown channel %q", i.ID, i.Channel)
	}
	if !i.Priority.Valid() {
		return fmt.Errorf("incident %s has unknown priority %q", i.ID, i.Priority)
	}
	return nil
}
