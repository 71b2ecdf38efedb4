package scheduling

import (
	"fmt"
	"strconv"

	"schedly/models"
)

// ResourceDirectory maps the resource IDs referenced by the currently loaded
// appointments to their display entries. It is not a complete directory of
// the whole system, only of what the visible bookings reference.
type ResourceDirectory struct {
	LocationsByID    map[int]models.BackendLocation
	WorkersByID      map[int]models.BackendWorker
	AppointmentsByID map[int]models.Appointment
}

// BuildResourceDirectory derives all three lookup tables in one pass over the
// appointment list. Only appointments whose ID parses as a base-10 integer
// are indexed (draft sentinels are skipped). Duplicate resource IDs keep
// their first occurrence. The result is rebuilt from scratch per call, so
// stale entries from a previous list cannot survive.
func BuildResourceDirectory(appts []models.Appointment) ResourceDirectory {
	dir := ResourceDirectory{
		LocationsByID:    make(map[int]models.BackendLocation),
		WorkersByID:      make(map[int]models.BackendWorker),
		AppointmentsByID: make(map[int]models.Appointment),
	}

	for _, appt := range appts {
		if id, err := strconv.Atoi(appt.ID); err == nil {
			if _, seen := dir.AppointmentsByID[id]; !seen {
				dir.AppointmentsByID[id] = appt
			}
		}
		if appt.RoomID != nil {
			if _, seen := dir.LocationsByID[*appt.RoomID]; !seen {
				dir.LocationsByID[*appt.RoomID] = models.BackendLocation{
					ID:       *appt.RoomID,
					Name:     appt.Room,
					IsLocked: appt.RoomLocked != nil && *appt.RoomLocked,
				}
			}
		}
		if appt.ProviderID != nil {
			if _, seen := dir.WorkersByID[*appt.ProviderID]; !seen {
				dir.WorkersByID[*appt.ProviderID] = models.BackendWorker{
					ID:       *appt.ProviderID,
					Name:     appt.Provider,
					IsLocked: appt.ProviderLocked != nil && *appt.ProviderLocked,
				}
			}
		}
	}
	return dir
}

// LocationName resolves a location ID to its display name, falling back to a
// numeric placeholder on a miss.
func (d ResourceDirectory) LocationName(id int) string {
	if loc, ok := d.LocationsByID[id]; ok && loc.Name != "" {
		return loc.Name
	}
	return fmt.Sprintf("#%d", id)
}

// WorkerName resolves a worker ID to its display name, falling back to a
// numeric placeholder on a miss.
func (d ResourceDirectory) WorkerName(id int) string {
	if w, ok := d.WorkersByID[id]; ok && w.Name != "" {
		return w.Name
	}
	return fmt.Sprintf("#%d", id)
}
