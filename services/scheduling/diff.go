package scheduling

import "schedly/models"

// DiffAppointments compares an optimizer proposal against the previous list.
// An appointment counts as changed when it is new, or when any of the six
// compared fields differ (shallow field comparison). Appointments present
// before but omitted from the proposal are reported separately; the engine
// does not treat omission as deletion.
func DiffAppointments(before, after []models.Appointment) (changed, omitted []string) {
	prev := make(map[string]models.Appointment, len(before))
	for _, appt := range before {
		if _, seen := prev[appt.ID]; !seen {
			prev[appt.ID] = appt
		}
	}

	seen := make(map[string]bool, len(after))
	for _, appt := range after {
		seen[appt.ID] = true
		old, existed := prev[appt.ID]
		if !existed {
			changed = append(changed, appt.ID)
			continue
		}
		if old.StartTime != appt.StartTime ||
			old.EndTime != appt.EndTime ||
			old.Provider != appt.Provider ||
			old.Room != appt.Room ||
			old.Service != appt.Service ||
			old.ClientName != appt.ClientName {
			changed = append(changed, appt.ID)
		}
	}

	for _, appt := range before {
		if !seen[appt.ID] {
			omitted = append(omitted, appt.ID)
		}
	}
	return changed, omitted
}
