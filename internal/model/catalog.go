package model

import "time"

// Speaker is a presenter listed in the public speaker catalog.
type Speaker struct {
	ID       string  `json:"id"`       // speakers.id
	Name     string  `json:"name"`     // speakers.name
	Title    string  `json:"title"`    // speakers.title
	Bio      string  `json:"bio"`      // speakers.bio
	ImageURL *string `json:"imageUrl"` // speakers.image_url (nullable)
}

// Location is a named venue room referenced by schedule events.
type Location struct {
	ID   string `json:"id"`   // locations.id
	Name string `json:"name"` // locations.name
}

// ScheduleEvent is a single programme entry. SpeakerIDs is loaded from
// the event_speakers junction table; LocationID may be nil for events
// without a fixed room.
type ScheduleEvent struct {
	ID          string    `json:"id"`          // schedule_events.id
	Title       string    `json:"title"`       // schedule_events.title
	Description string    `json:"description"` // schedule_events.description
	StartTime   time.Time `json:"startTime"`   // schedule_events.start_time
	EndTime     time.Time `json:"endTime"`     // schedule_events.end_time
	LocationID  *string   `json:"locationId"`  // schedule_events.location_id (nullable)
	SpeakerIDs  []string  `json:"speakerIds"`  // event_speakers.speaker_id
	CreatedAt   time.Time `json:"createdAt"`   // schedule_events.created_at
}

// Exhibitor is a company with a stand in the exhibition hall.
type Exhibitor struct {
	ID          string  `json:"id"`          // exhibitors.id
	Name        string  `json:"name"`        // exhibitors.name
	Description string  `json:"description"` // exhibitors.description
	LogoURL     *string `json:"logoUrl"`     // exhibitors.logo_url (nullable)
	WebsiteURL  string  `json:"websiteUrl"`  // exhibitors.website_url
	BoothNumber string  `json:"boothNumber"` // exhibitors.booth_number
}
