package scheduling

import (
	"fmt"
	"strings"
	"time"

	"schedly/models"
)

// Evaluation criteria reported by the backend's constraint evaluator.
const (
	CriteriaServiceNotProvided  = "EachErrandResourceHaveAServiceProvidedByParentErrand"
	CriteriaCapacityMismatch    = "ServicingResourceCapacityMatchesCustomerResourcesCapacity"
	CriteriaResourceUnavailable = "ResourceAvailableForErrand"
	CriteriaDoubleBooked        = "SolutionResourceDoubleBooked"
)

// BuildConflictExplanation renders a human-readable explanation for the
// conflicts attached to an appointment. One line per conflict record; detail
// fragments within a record are joined with spaces. Returns "" for an empty
// conflict list. Pure and deterministic.
func BuildConflictExplanation(conflicts []models.ConflictRecord, appt models.Appointment, dir ResourceDirectory) string {
	if len(conflicts) == 0 {
		return ""
	}

	var lines []string
	for _, record := range conflicts {
		switch record.EvaluationCriteria {
		case CriteriaServiceNotProvided:
			line := "The assigned resources cannot provide this service."
			var fragments []string
			for _, res := range record.Results {
				for _, locID := range res.Locations {
					fragments = append(fragments, fmt.Sprintf("Room '%s' cannot provide %s.", dir.LocationName(locID), appt.Service))
				}
				for _, workerID := range res.Workers {
					fragments = append(fragments, fmt.Sprintf("Provider '%s' cannot provide %s.", dir.WorkerName(workerID), appt.Service))
				}
			}
			if len(fragments) > 0 {
				line += " " + strings.Join(fragments, " ")
			}
			lines = append(lines, line)

		case CriteriaCapacityMismatch:
			lines = append(lines, "The room's capacity does not match the number of attending clients.")

		case CriteriaResourceUnavailable:
			lines = append(lines, "A required resource is not available during the requested time.")

		case CriteriaDoubleBooked:
			// No base message here: the detail lines carry the whole story.
			// A record whose results resolve to zero resources emits nothing.
			var fragments []string
			for _, res := range record.Results {
				summary := summarizeBookings(res.ConflictsWithIDs, dir)
				for _, locID := range res.Locations {
					fragments = append(fragments, doubleBookedLine("Room", dir.LocationName(locID), summary))
				}
				for _, workerID := range res.Workers {
					fragments = append(fragments, doubleBookedLine("Provider", dir.WorkerName(workerID), summary))
				}
			}
			if len(fragments) > 0 {
				lines = append(lines, strings.Join(fragments, " "))
			}

		default:
			line := fmt.Sprintf("Conflict detected: %s.", record.EvaluationCriteria)
			var fragments []string
			for _, res := range record.Results {
				for _, locID := range res.Locations {
					fragments = append(fragments, fmt.Sprintf("Room '%s' is involved in this conflict.", dir.LocationName(locID)))
				}
				for _, workerID := range res.Workers {
					fragments = append(fragments, fmt.Sprintf("Provider '%s' is involved in this conflict.", dir.WorkerName(workerID)))
				}
			}
			if len(fragments) > 0 {
				line += " " + strings.Join(fragments, " ")
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func doubleBookedLine(kind, name, summary string) string {
	if summary == "" {
		return fmt.Sprintf("%s '%s' is already booked at this time.", kind, name)
	}
	return fmt.Sprintf("%s '%s' is already booked by %s.", kind, name, summary)
}

// summarizeBookings names the conflicting bookings by client, service and
// time range, resolved via the appointment-by-ID map. Unresolvable IDs fall
// back to "booking #<id>".
func summarizeBookings(ids []int, dir ResourceDirectory) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		other, ok := dir.AppointmentsByID[id]
		if !ok {
			parts = append(parts, fmt.Sprintf("booking #%d", id))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s - %s (%s - %s)",
			other.ClientName, other.Service,
			formatClock(other.StartTime), formatClock(other.EndTime)))
	}
	return strings.Join(parts, ", ")
}

func formatClock(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("15:04")
}
