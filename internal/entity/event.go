package entity

import (
	"time"

	"github.com/NEARFoundation/events-platform/internal/fault"
)

// EventType is the closed kind enum for events.
type EventType string

const (
	EventTypeVirtual  EventType = "virtual"
	EventTypeInPerson EventType = "irl"
	EventTypeMixed    EventType = "mixed"
)

func (t EventType) valid() bool {
	switch t {
	case EventTypeVirtual, EventTypeInPerson, EventTypeMixed:
		return true
	}
	return false
}

// EventStatus is the closed lifecycle enum for events.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}
	return false
}

// ImageType is the closed enum for event images.
type ImageType string

const (
	ImageTypeBanner ImageType = "banner"
	ImageTypeTile   ImageType = "tile"
)

func (t ImageType) valid() bool { return t == ImageTypeBanner || t == ImageTypeTile }

// LinkType is the closed enum for event links.
type LinkType string

const (
	LinkTypeRegister   LinkType = "register"
	LinkTypeTickets    LinkType = "tickets"
	LinkTypeJoinStream LinkType = "join_stream"
)

func (t LinkType) valid() bool {
	switch t {
	case LinkTypeRegister, LinkTypeTickets, LinkTypeJoinStream:
		return true
	}
	return false
}

// Image is one event image with its placement type.
type Image struct {
	URL  string    `json:"url"`
	Type ImageType `json:"type"`
}

// Link is one event call-to-action link.
type Link struct {
	Text string   `json:"text"`
	Type LinkType `json:"type"`
	URL  string   `json:"url"`
}

// Event is a stored event record. ID and Owner are immutable once set;
// LastUpdatedAt advances on every successful mutation.
type Event struct {
	ID            string      `json:"id"`
	Owner         string      `json:"owner_account_id"`
	CreatedAt     time.Time   `json:"created_at"`
	LastUpdatedAt time.Time   `json:"last_updated_at"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	Type          EventType   `json:"type"`
	Status        EventStatus `json:"status"`
	Description   string      `json:"description"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       time.Time   `json:"end_date"`
	Location      string      `json:"location"`
	Images        []Image     `json:"images"`
	Links         []Link      `json:"links"`
	// LikedBy is stored but not consulted by any current operation.
	LikedBy []string `json:"liked_by"`
}

// EventFields carries caller-supplied event fields. Nil pointers mean
// "leave unchanged" for updates and "zero value" for creates.
type EventFields struct {
	Name        *string      `json:"name,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Type        *EventType   `json:"type,omitempty"`
	Status      *EventStatus `json:"status,omitempty"`
	Description *string      `json:"description,omitempty"`
	StartDate   *time.Time   `json:"start_date,omitempty"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Images      *[]Image     `json:"images,omitempty"`
	Links       *[]Link      `json:"links,omitempty"`
}

// Validate checks enum values on the fields that are set.
func (f EventFields) Validate() error {
	if f.Type != nil && !f.Type.valid() {
		return fault.InvalidArgument("unknown event type %q", *f.Type)
	}
	if f.Status != nil && !f.Status.valid() {
		return fault.InvalidArgument("unknown event status %q", *f.Status)
	}
	if f.Images != nil {
		for _, img := range *f.Images {
			if !img.Type.valid() {
				return fault.InvalidArgument("unknown image type %q", img.Type)
			}
		}
	}
	if f.Links != nil {
		for _, l := range *f.Links {
			if !l.Type.valid() {
				return fault.InvalidArgument("unknown link type %q", l.Type)
			}
		}
	}
	return nil
}

// Apply merges set fields into the event. ID, Owner and CreatedAt are never
// touched; the caller stamps LastUpdatedAt.
func (e *Event) Apply(f EventFields) {
	if f.Name != nil {
		e.Name = *f.Name
	}
	if f.Category != nil {
		e.Category = *f.Category
	}
	if f.Type != nil {
		e.Type = *f.Type
	}
	if f.Status != nil {
		e.Status = *f.Status
	}
	if f.Description != nil {
		e.Description = *f.Description
	}
	if f.StartDate != nil {
		e.StartDate = *f.StartDate
	}
	if f.EndDate != nil {
		e.EndDate = *f.EndDate
	}
	if f.Location != nil {
		e.Location = *f.Location
	}
	if f.Images != nil {
		e.Images = *f.Images
	}
	if f.Links != nil {
		e.Links = *f.Links
	}
}
