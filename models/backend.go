package models

// Backend wire types, aligned with the scheduling backend's API contract.

type BackendServiceRef struct {
	Description string `json:"description"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CalendarID  *int   `json:"calendarId,omitempty"`
}

type BackendAbsence struct {
	AbsenceTimeRange struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"absenceTimeRange"`
	Reason string `json:"reason"`
}

type BackendPreferrableResource struct {
	ResourceID    int   `json:"resourceId"`
	OnServicesIDs []int `json:"onServicesIds"`
}

// BackendLocation is a room (or other bookable space) as the backend models it.
type BackendLocation struct {
	IsLocked          bool                `json:"isLocked"`
	Description       string              `json:"description"`
	MaxCapacity       int                 `json:"maxCapacity"`
	AvailableServices []BackendServiceRef `json:"availableServices"`
	Absences          []BackendAbsence    `json:"absences"`
	CalendarID        int                 `json:"calendarId"`
	ID                int                 `json:"id"`
	Name              string              `json:"name"`
}

// BackendWorker is a service provider as the backend models it.
type BackendWorker struct {
	IsLocked             bool                         `json:"isLocked"`
	Description          string                       `json:"description"`
	AvailableServices    []BackendServiceRef          `json:"availableServices"`
	Absences             []BackendAbsence             `json:"absences"`
	CustomData           string                       `json:"customData,omitempty"`
	PreferrableResources []BackendPreferrableResource `json:"preferrableResources"`
	CalendarID           int                          `json:"calendarId"`
	ID                   int                          `json:"id"`
	Name                 string                       `json:"name"`
}

type BackendClient struct {
	Description          string                       `json:"description"`
	PreferrableResources []BackendPreferrableResource `json:"preferrableResources"`
	CalendarID           int                          `json:"calendarId"`
	ID                   int                          `json:"id"`
	Name                 string                       `json:"name"`
}

// BackendCalendarEvent is a booking as returned by the backend, with nested
// resource-reference arrays.
type BackendCalendarEvent struct {
	Description string              `json:"description"`
	Starting    string              `json:"starting"` // e.g. 2025-07-16T06:00:00-04:00
	Ending      string              `json:"ending"`
	Services    []BackendServiceRef `json:"services"`
	Locations   []BackendLocation   `json:"locations"`
	Workers     []BackendWorker     `json:"workers"`
	Clients     []BackendClient     `json:"clients"`
	IsLocked    bool                `json:"isLocked"`
	CalendarID  int                 `json:"calendarId"`
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Conflicts   []ConflictRecord    `json:"conflicts,omitempty"`
}

// ResourceRef is how create/update requests reference a resource by ID.
// The backend expects "IsLocked" capitalized on requests.
type ResourceRef struct {
	ID       int  `json:"id"`
	IsLocked bool `json:"IsLocked"`
}

// CreateBookingRequest is the payload for creating a booking. Resource refs
// are omitted (empty arrays, never null) when the appointment carries no
// resolved ID for that category.
type CreateBookingRequest struct {
	CalendarID  int           `json:"calendarId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Starting    string        `json:"starting"`
	Ending      string        `json:"ending"`
	Locations   []ResourceRef `json:"locations"`
	Workers     []ResourceRef `json:"workers"`
	Clients     []ResourceRef `json:"clients"`
	ServicesIDs []int         `json:"servicesIds"`
	IsLocked    bool          `json:"isLocked"`
}

// UpdateBookingRequest additionally carries the persisted numeric booking ID.
type UpdateBookingRequest struct {
	CreateBookingRequest
	ID int `json:"id"`
}
